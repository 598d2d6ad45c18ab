package options

import "SignalPull/internal/domain/models"

const (
	RatingGreen = "green"
	RatingAmber = "amber"
	RatingRed   = "red"
)

// RateGreek classifies a single greek into a traffic-light band with a
// display tooltip. Bands follow the dashboard's long-call heuristics.
func RateGreek(greek string, value float64) models.GreekRating {
	switch greek {
	case "delta":
		switch {
		case value >= 0.20 && value <= 0.35:
			return models.GreekRating{Rating: RatingGreen, Tooltip: "Optimal leverage & probability"}
		case (value >= 0.15 && value < 0.20) || (value > 0.35 && value <= 0.45):
			return models.GreekRating{Rating: RatingAmber, Tooltip: "Acceptable range"}
		case value < 0.15:
			return models.GreekRating{Rating: RatingRed, Tooltip: "Low probability of profit"}
		default:
			return models.GreekRating{Rating: RatingRed, Tooltip: "Expensive, reduced leverage"}
		}
	case "gamma":
		switch {
		case value >= 0.010:
			return models.GreekRating{Rating: RatingGreen, Tooltip: "Fast delta acceleration"}
		case value >= 0.005:
			return models.GreekRating{Rating: RatingAmber, Tooltip: "Moderate responsiveness"}
		default:
			return models.GreekRating{Rating: RatingRed, Tooltip: "Slow delta pickup on moves"}
		}
	case "theta":
		switch {
		case value >= -0.20:
			return models.GreekRating{Rating: RatingGreen, Tooltip: "Low time decay"}
		case value >= -0.40:
			return models.GreekRating{Rating: RatingAmber, Tooltip: "Moderate decay - monitor"}
		default:
			return models.GreekRating{Rating: RatingRed, Tooltip: "Heavy decay eating premium"}
		}
	case "vega":
		switch {
		case value >= 0.25:
			return models.GreekRating{Rating: RatingGreen, Tooltip: "Benefits from IV expansion"}
		case value >= 0.15:
			return models.GreekRating{Rating: RatingAmber, Tooltip: "Moderate vol sensitivity"}
		default:
			return models.GreekRating{Rating: RatingRed, Tooltip: "Limited IV benefit"}
		}
	}
	return models.GreekRating{Rating: RatingAmber}
}

// ScoreSetup sums the four greek ratings (green=2, amber=1, red=0) into
// a 0-8 setup score with an overall label.
func ScoreSetup(m models.OptionMetrics) models.SetupScore {
	ratings := []models.GreekRating{
		RateGreek("delta", m.Delta),
		RateGreek("gamma", m.Gamma),
		RateGreek("theta", m.Theta),
		RateGreek("vega", m.Vega),
	}

	score := 0
	for _, r := range ratings {
		switch r.Rating {
		case RatingGreen:
			score += 2
		case RatingAmber:
			score++
		}
	}

	const maxScore = 8
	pct := float64(score) / maxScore * 100

	out := models.SetupScore{Score: score, MaxScore: maxScore, Percentage: pct}
	switch {
	case pct >= 75:
		out.Rating, out.Label = RatingGreen, "Strong Setup"
	case pct >= 50:
		out.Rating, out.Label = RatingAmber, "Moderate Setup"
	default:
		out.Rating, out.Label = RatingRed, "Weak Setup"
	}
	return out
}

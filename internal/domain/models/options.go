package models

// OptionMetrics is the pricing engine's output for one call contract.
// Pure value type: a function of (spot, strike, dte, iv) only.
type OptionMetrics struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	// Premium is floored at 0.10 so a displayed quote is never free.
	Premium float64 `json:"premium"`
	// ProbabilityOfProfit is N(d2)*100 clamped into [5,50] for display.
	ProbabilityOfProfit int `json:"probabilityOfProfit"`
	// ProbabilityOf2x is max(3, raw POP * 0.5). A display heuristic, not
	// a derived doubling probability.
	ProbabilityOf2x int `json:"probabilityOf2x"`
}

// GreekRating classifies one greek into a traffic-light band.
type GreekRating struct {
	Rating  string `json:"rating"` // "green", "amber", "red"
	Tooltip string `json:"tooltip"`
}

// SetupScore aggregates the four greek ratings into a 0-8 setup score.
type SetupScore struct {
	Score      int     `json:"score"`
	MaxScore   int     `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
	Rating     string  `json:"rating"`
}

package signal

import (
	"fmt"
	"time"

	"SignalPull/internal/domain/models"
)

// ScoreInsiderSummary computes the 0-100 insider sub-score from value
// tier, insider-count tier and direction clarity.
func ScoreInsiderSummary(s *models.InsiderSummary) int {
	score := 0
	switch {
	case s.TotalValue >= insiderScoreValueT1:
		score += 40
	case s.TotalValue >= insiderScoreValueT2:
		score += 30
	case s.TotalValue >= insiderScoreValueT3:
		score += 20
	default:
		score += 10
	}

	switch {
	case s.InsiderCount >= 3:
		score += 30
	case s.InsiderCount >= 2:
		score += 20
	default:
		score += 10
	}

	if s.NetDirection != models.DirectionMixed {
		score += 30
	} else {
		score += 10
	}
	return score
}

// ScoreContractSummary computes the 0-100 contract sub-score from value
// tier, count tier and the defense-sector bonus.
func ScoreContractSummary(s *models.ContractSummary) int {
	score := 0
	switch {
	case s.TotalValue >= contractScoreValueT1:
		score += 50
	case s.TotalValue >= contractScoreValueT2:
		score += 40
	case s.TotalValue >= contractScoreValueT3:
		score += 30
	default:
		score += 20
	}

	switch {
	case s.ContractCount >= contractScoreCountT1:
		score += 30
	case s.ContractCount >= contractScoreCountT2:
		score += 20
	default:
		score += 10
	}

	if s.Sector == "Defense" {
		score += 20
	} else {
		score += 10
	}
	return score
}

// Combine builds a single directional signal from the insider and/or
// contract sub-summaries for one ticker. Returns (nil) when neither is
// present or the total score falls below the minimum: the signal is
// suppressed, which is a legitimate outcome rather than an error.
//
// Sub-summary Score fields must already be populated (ScoreInsiderSummary
// / ScoreContractSummary); materiality floors are the caller's concern.
func Combine(ticker string, insider *models.InsiderSummary, contract *models.ContractSummary, now time.Time) *models.CombinedSignal {
	if insider == nil && contract == nil {
		return nil
	}

	reasons := make([]string, 0, 3)
	totalScore := 0
	signalType := models.SignalTypeInsider
	direction := models.DirectionLong

	if insider != nil {
		totalScore += insider.Score
		millions := insider.TotalValue / 1_000_000
		switch insider.NetDirection {
		case models.DirectionBuy:
			reasons = append(reasons, fmt.Sprintf("Insider buying: $%.1fM by %d insider(s)", millions, insider.InsiderCount))
			direction = models.DirectionLong
		case models.DirectionSell:
			reasons = append(reasons, fmt.Sprintf("Insider selling: $%.1fM by %d insider(s)", millions, insider.InsiderCount))
			direction = models.DirectionShort
		default:
			reasons = append(reasons, fmt.Sprintf("Mixed insider activity: $%.1fM", millions))
		}
	}

	if contract != nil {
		totalScore += contract.Score
		reasons = append(reasons, fmt.Sprintf("%s contracts: $%.0fM from %s", contract.Sector, contract.TotalValue/1_000_000, contract.PrimaryAgency))
		if insider != nil {
			signalType = models.SignalTypeCombined
		} else {
			signalType = models.SignalTypeContract
		}
		// Contract awards are inherently bullish; only an insider SELL
		// overrides them.
		if insider == nil || insider.NetDirection != models.DirectionSell {
			direction = models.DirectionLong
		}
	}

	if insider != nil && contract != nil {
		totalScore += combinedBonus
		reasons = append(reasons, "COMBINED: Insider activity + Government contracts")
	}

	if totalScore < MinCombinedScore {
		return nil
	}

	confidence := models.StrengthLow
	if totalScore >= confidenceHighMin {
		confidence = models.StrengthHigh
	} else if totalScore >= confidenceMedMin {
		confidence = models.StrengthMedium
	}

	return &models.CombinedSignal{
		Ticker:         ticker,
		Direction:      direction,
		SignalType:     signalType,
		Confidence:     confidence,
		Score:          totalScore,
		Reasons:        reasons,
		InsiderData:    insider,
		ContractData:   contract,
		SuggestedEntry: entryForConfidence(confidence),
		GeneratedAt:    now,
	}
}

// entryForConfidence maps confidence to options entry parameters. Stop
// percent is fixed regardless of confidence.
func entryForConfidence(confidence string) *models.SuggestedEntry {
	e := &models.SuggestedEntry{StopPercent: 0.10}
	switch confidence {
	case models.StrengthHigh:
		e.StrikeOffset, e.DTE = 0.05, 45
	case models.StrengthMedium:
		e.StrikeOffset, e.DTE = 0.08, 35
	default:
		e.StrikeOffset, e.DTE = 0.10, 28
	}
	return e
}

package signal

import (
	"math"

	"SignalPull/internal/domain/models"
)

// AggregateInsider reduces one symbol's insider transactions into an
// InsiderSignal. The second return is false when the input is empty:
// callers must treat that as "no signal", not as a zero-valued one.
// Transactions are assumed most-recent-first; the output sample keeps
// the first 10 in input order.
func AggregateInsider(symbol string, txs []models.InsiderTransaction) (models.InsiderSignal, bool) {
	if len(txs) == 0 {
		return models.InsiderSignal{}, false
	}

	var buyShares, sellShares, buyValue, sellValue float64
	insiders := make(map[string]bool)
	latestDate := ""

	for _, tx := range txs {
		shares := math.Abs(tx.SharesDelta)
		value := shares * tx.TransactionPrice
		insiders[tx.InsiderName] = true

		if tx.TransactionDate > latestDate {
			latestDate = tx.TransactionDate
		}

		switch {
		case purchaseCodes[tx.TransactionCode]:
			buyShares += shares
			buyValue += value
		case saleCodes[tx.TransactionCode]:
			sellShares += shares
			sellValue += value
		}
	}

	netShares := buyShares - sellShares
	totalValue := math.Max(buyValue, sellValue)
	insiderCount := len(insiders)

	netDirection := models.DirectionMixed
	if buyValue > sellValue*directionMargin {
		netDirection = models.DirectionBuy
	} else if sellValue > buyValue*directionMargin {
		netDirection = models.DirectionSell
	}

	avgPrice := 0.0
	if buyShares+sellShares > 0 {
		avgPrice = totalValue / (buyShares + sellShares)
	}

	sample := txs
	if len(sample) > insiderSampleSize {
		sample = sample[:insiderSampleSize]
	}

	return models.InsiderSignal{
		Symbol:         symbol,
		TotalShares:    math.Abs(netShares),
		TotalValue:     totalValue,
		NetDirection:   netDirection,
		Transactions:   sample,
		InsiderCount:   insiderCount,
		AvgPrice:       avgPrice,
		LatestDate:     latestDate,
		SignalStrength: insiderStrength(totalValue, insiderCount),
		IsCluster:      insiderCount >= clusterMinInsiders,
	}, true
}

func insiderStrength(totalValue float64, insiderCount int) string {
	if totalValue >= insiderHighValue || insiderCount >= insiderHighCount {
		return models.StrengthHigh
	}
	if totalValue >= insiderMediumValue || insiderCount >= insiderMediumCount {
		return models.StrengthMedium
	}
	return models.StrengthLow
}

package signal

import (
	"sort"

	"SignalPull/internal/domain/models"
)

var strengthOrder = map[string]int{
	models.StrengthHigh:   3,
	models.StrengthMedium: 2,
	models.StrengthLow:    1,
}

// SortInsiderSignals orders signals by strength descending, ties broken
// by total value descending. Fetch-completion order is never meaningful;
// callers rely on this deterministic ranking.
func SortInsiderSignals(signals []models.InsiderSignal) {
	sort.SliceStable(signals, func(i, j int) bool {
		si, sj := strengthOrder[signals[i].SignalStrength], strengthOrder[signals[j].SignalStrength]
		if si != sj {
			return si > sj
		}
		return signals[i].TotalValue > signals[j].TotalValue
	})
}

// SortContractSignals applies the same strength-then-value ranking.
func SortContractSignals(signals []models.ContractSignal) {
	sort.SliceStable(signals, func(i, j int) bool {
		si, sj := strengthOrder[signals[i].SignalStrength], strengthOrder[signals[j].SignalStrength]
		if si != sj {
			return si > sj
		}
		return signals[i].TotalContractValue > signals[j].TotalContractValue
	})
}

// SortCombinedSignals orders combined signals by score descending.
func SortCombinedSignals(signals []*models.CombinedSignal) {
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})
}

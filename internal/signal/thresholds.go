package signal

// Scoring and classification thresholds. These are policy, not incidental
// detail: tune them here, never inline in the aggregation code.

// Insider transaction code sets. Codes outside both sets contribute to
// neither buy nor sell totals but still count toward the distinct-insider
// set and the latest-date bookkeeping.
var (
	purchaseCodes = map[string]bool{"P": true, "A": true}
	saleCodes     = map[string]bool{"S": true, "D": true, "F": true}
)

const (
	// Net direction requires one side to exceed the other by this margin.
	directionMargin = 1.5

	// Insider strength tiers.
	insiderHighValue   = 1_000_000
	insiderHighCount   = 3
	insiderMediumValue = 250_000
	insiderMediumCount = 2

	// Two or more distinct insiders form a cluster.
	clusterMinInsiders = 2

	// Contract strength tiers.
	contractHighValue   = 50_000_000
	contractHighCount   = 5
	contractMediumValue = 10_000_000
	contractMediumCount = 2

	// Batch-level floor applied by the insider scan, not the aggregator.
	InsiderBatchMinValue = 50_000

	// Materiality floors applied before combined-signal generation.
	CombinedInsiderMinValue  = 100_000
	CombinedContractMinValue = 1_000_000

	// Combined signal scoring.
	combinedBonus      = 20
	MinCombinedScore   = 40
	confidenceHighMin  = 80
	confidenceMedMin   = 60
	DefaultScanMinimum = 50

	// Sample sizes retained on the output signals.
	insiderSampleSize  = 10
	contractSampleSize = 5
)

// Insider sub-score tiers (value, count, direction clarity).
const (
	insiderScoreValueT1 = 5_000_000 // 40 pts
	insiderScoreValueT2 = 1_000_000 // 30 pts
	insiderScoreValueT3 = 500_000   // 20 pts
)

// Contract sub-score tiers.
const (
	contractScoreValueT1 = 100_000_000 // 50 pts
	contractScoreValueT2 = 50_000_000  // 40 pts
	contractScoreValueT3 = 10_000_000  // 30 pts
	contractScoreCountT1 = 5           // 30 pts
	contractScoreCountT2 = 3           // 20 pts
)

package models

import "time"

// Signal direction and classification labels. These are wire values,
// kept as the upstream dashboard spelled them.
const (
	DirectionBuy   = "BUY"
	DirectionSell  = "SELL"
	DirectionMixed = "MIXED"

	DirectionLong  = "LONG"
	DirectionShort = "SHORT"

	StrengthHigh   = "HIGH"
	StrengthMedium = "MEDIUM"
	StrengthLow    = "LOW"

	SignalTypeInsider  = "INSIDER"
	SignalTypeContract = "CONTRACT"
	SignalTypeCombined = "COMBINED"
)

// InsiderSignal is the reduction of one symbol's insider transactions.
// Recomputed from the transaction list on every aggregation; never
// persisted with identity.
type InsiderSignal struct {
	Symbol         string               `json:"symbol"`
	TotalShares    float64              `json:"totalShares"`
	TotalValue     float64              `json:"totalValue"`
	NetDirection   string               `json:"netDirection"`
	Transactions   []InsiderTransaction `json:"transactions"`
	InsiderCount   int                  `json:"insiderCount"`
	AvgPrice       float64              `json:"avgPrice"`
	LatestDate     string               `json:"latestDate"`
	SignalStrength string               `json:"signalStrength"`
	IsCluster      bool                 `json:"isCluster"`
}

// ContractSignal is the reduction of one symbol's contract awards.
type ContractSignal struct {
	Symbol             string               `json:"symbol"`
	CompanyName        string               `json:"companyName"`
	TotalContractValue float64              `json:"totalContractValue"`
	ContractCount      int                  `json:"contractCount"`
	Contracts          []GovernmentContract `json:"contracts"`
	PrimaryAgency      string               `json:"primaryAgency"`
	LatestDate         string               `json:"latestDate"`
	SignalStrength     string               `json:"signalStrength"`
	Sector             string               `json:"sector"`
}

// InsiderSummary is the insider sub-signal embedded in a CombinedSignal.
type InsiderSummary struct {
	NetDirection string  `json:"netDirection"`
	TotalValue   float64 `json:"totalValue"`
	InsiderCount int     `json:"insiderCount"`
	LatestDate   string  `json:"latestDate"`
	Score        int     `json:"-"`
}

// ContractSummary is the contract sub-signal embedded in a CombinedSignal.
type ContractSummary struct {
	TotalValue    float64 `json:"totalValue"`
	ContractCount int     `json:"contractCount"`
	PrimaryAgency string  `json:"primaryAgency"`
	Sector        string  `json:"sector"`
	Score         int     `json:"-"`
}

// SuggestedEntry carries options entry parameters derived from the
// combined signal's confidence.
type SuggestedEntry struct {
	StrikeOffset float64 `json:"strikeOffset"`
	DTE          int     `json:"dte"`
	StopPercent  float64 `json:"stopPercent"`
}

// CombinedSignal is the ranked, directional signal built from an insider
// sub-signal, a contract sub-signal, or both. Regenerated every scan
// cycle and never persisted with identity.
type CombinedSignal struct {
	Ticker         string           `json:"ticker"`
	Direction      string           `json:"direction"`
	SignalType     string           `json:"signalType"`
	Confidence     string           `json:"confidence"`
	Score          int              `json:"score"`
	Reasons        []string         `json:"reasons"`
	InsiderData    *InsiderSummary  `json:"insiderData,omitempty"`
	ContractData   *ContractSummary `json:"contractData,omitempty"`
	SuggestedEntry *SuggestedEntry  `json:"suggestedEntry,omitempty"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

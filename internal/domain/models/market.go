package models

// PriceQuote is a point-in-time quote for one symbol. Refreshed on every
// fetch cycle; it has no identity beyond symbol+timestamp.
type PriceQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     int64   `json:"timestamp"`
}

// IsZero reports whether the quote is the provider's all-zero sentinel
// for an unknown symbol.
func (q PriceQuote) IsZero() bool {
	return q.Price == 0 && q.PreviousClose == 0
}

// InsiderTransaction is a single insider filing row. Immutable once
// received. Dates are ISO YYYY-MM-DD strings; lexicographic comparison
// is valid date comparison.
type InsiderTransaction struct {
	Symbol           string  `json:"symbol"`
	InsiderName      string  `json:"name"`
	SharesDelta      float64 `json:"change"`
	FilingDate       string  `json:"filingDate"`
	TransactionDate  string  `json:"transactionDate"`
	TransactionCode  string  `json:"transactionCode"`
	TransactionPrice float64 `json:"transactionPrice"`
	Currency         string  `json:"currency"`
}

// GovernmentContract is a single contract award row. Immutable;
// TotalValue defaults to 0 when absent upstream.
type GovernmentContract struct {
	Symbol               string  `json:"symbol"`
	AwardDescription     string  `json:"awardDescription"`
	TotalValue           float64 `json:"totalValue"`
	ActionDate           string  `json:"actionDate"`
	Agency               string  `json:"agency"`
	Recipient            string  `json:"recipient"`
	PerformanceStartDate string  `json:"performanceStartDate"`
	PerformanceEndDate   string  `json:"performanceEndDate"`
}

// LiveTick is a streamed trade price update used by the alert watcher.
type LiveTick struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp int64
}

package models

// Request DTOs for the HTTP layer. Validation tags are enforced by
// pkg/http.ReadAndValidateRequest; defaults by creasty/defaults.

type PricesRequest struct {
	Symbols string `query:"symbols" validate:"required"`
}

type InsiderRequest struct {
	Symbols string `query:"symbols" validate:"required"`
	Days    int    `query:"days" default:"30" validate:"gte=1,lte=365"`
}

type ContractsRequest struct {
	Symbols string `query:"symbols" validate:"required"`
	Days    int    `query:"days" default:"90" validate:"gte=1,lte=365"`
}

type SignalsRequest struct {
	Symbols  string `query:"symbols"`
	MinScore int    `query:"minScore" default:"50" validate:"gte=0"`
}

type PriceCallRequest struct {
	Spot   float64 `json:"spot" validate:"required,gt=0"`
	Strike float64 `json:"strike" validate:"omitempty,gt=0"`
	// StrikeOffset is used to derive the strike when Strike is omitted.
	StrikeOffset float64 `json:"strikeOffset"`
	DTE          int     `json:"dte" default:"30" validate:"gt=0"`
	IV           float64 `json:"iv" default:"0.35" validate:"gt=0"`
}

type AlertRequest struct {
	Message string `json:"message" validate:"required"`
}

package api

import (
	"errors"
	"strings"

	"SignalPull/internal/domain/models"
	"SignalPull/internal/options"
	"SignalPull/internal/usecase"
	xhttp "SignalPull/pkg/http"
	applogger "SignalPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler exposes the scan and pricing operations over HTTP.
type Handler struct {
	log        *applogger.Logger
	scanner    *usecase.Scanner
	dispatcher *usecase.AlertDispatcher
	watchlist  []string
}

// NewHandler creates the API handler. watchlist backs requests that
// omit an explicit symbols list.
func NewHandler(l *applogger.Logger, scanner *usecase.Scanner, dispatcher *usecase.AlertDispatcher, watchlist []string) *Handler {
	return &Handler{log: l, scanner: scanner, dispatcher: dispatcher, watchlist: watchlist}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/prices", h.Prices)
	g.GET("/insider", h.Insider)
	g.GET("/contracts", h.Contracts)
	g.GET("/signals", h.Signals)
	g.POST("/options/price", h.PriceOption)
	g.POST("/alerts/telegram", h.RelayAlert)
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToUpper(strings.TrimSpace(p)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Prices returns current quotes keyed by symbol. Unknown symbols are
// omitted rather than reported as zeros.
func (h *Handler) Prices(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	quotes := h.scanner.Prices(c.Request().Context(), splitSymbols(req.Symbols))
	bySymbol := make(map[string]models.PriceQuote, len(quotes))
	for _, q := range quotes {
		if q.IsZero() {
			continue
		}
		bySymbol[q.Symbol] = q
	}
	return xhttp.SuccessResponse(c, bySymbol)
}

func (h *Handler) Insider(c echo.Context) error {
	req := &models.InsiderRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals := h.scanner.InsiderScan(c.Request().Context(), splitSymbols(req.Symbols), req.Days)
	return xhttp.ListResponse(c, signals, int64(len(signals)))
}

func (h *Handler) Contracts(c echo.Context) error {
	req := &models.ContractsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals := h.scanner.ContractScan(c.Request().Context(), splitSymbols(req.Symbols), req.Days)
	return xhttp.ListResponse(c, signals, int64(len(signals)))
}

// Signals runs the combined scan. Without an explicit symbols list the
// configured watchlist is scanned.
func (h *Handler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols := splitSymbols(req.Symbols)
	if len(symbols) == 0 {
		symbols = h.watchlist
	}

	signals := h.scanner.Scan(c.Request().Context(), symbols, req.MinScore)
	return xhttp.ListResponse(c, signals, int64(len(signals)))
}

type priceOptionResponse struct {
	Metrics models.OptionMetrics          `json:"metrics"`
	Strike  float64                       `json:"strike"`
	Ratings map[string]models.GreekRating `json:"ratings"`
	Setup   models.SetupScore             `json:"setup"`
}

// PriceOption prices one call contract. The strike may be given
// directly or derived from an OTM offset.
func (h *Handler) PriceOption(c echo.Context) error {
	req := &models.PriceCallRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	strike := req.Strike
	if strike == 0 {
		strike = options.StrikeForOffset(req.Spot, req.StrikeOffset)
	}

	metrics, err := options.PriceCall(req.Spot, strike, req.DTE, req.IV)
	if err != nil {
		if errors.Is(err, options.ErrInvalidInput) {
			return xhttp.AppErrorResponse(c, xhttp.InvalidInputError("", err.Error()))
		}
		h.log.Error("pricing failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	resp := priceOptionResponse{
		Metrics: metrics,
		Strike:  strike,
		Ratings: map[string]models.GreekRating{
			"delta": options.RateGreek("delta", metrics.Delta),
			"gamma": options.RateGreek("gamma", metrics.Gamma),
			"theta": options.RateGreek("theta", metrics.Theta),
			"vega":  options.RateGreek("vega", metrics.Vega),
		},
		Setup: options.ScoreSetup(metrics),
	}
	return xhttp.SuccessResponse(c, resp)
}

// RelayAlert forwards a preformatted message to the Telegram channel.
func (h *Handler) RelayAlert(c echo.Context) error {
	req := &models.AlertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.dispatcher.SendRaw(c.Request().Context(), req.Message); err != nil {
		h.log.Error("alert relay failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]bool{"success": true})
}

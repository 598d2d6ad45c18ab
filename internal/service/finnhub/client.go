package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	"SignalPull/internal/service/ratelimit"
	"SignalPull/pkg/cache"
	xhttp "SignalPull/pkg/http"
	applogger "SignalPull/pkg/logger"
)

const rateLimitKey = "finnhub:rest"

// ClientConfig holds REST client settings.
type ClientConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	RatePerMinute int
	RateBurst     int
	QuoteTTL      time.Duration
	InsiderTTL    time.Duration
	ContractTTL   time.Duration
}

// Client implements MarketData over the Finnhub REST API. Responses are
// cached per symbol+range; the shared token bucket keeps the process
// under the provider's per-minute budget.
type Client struct {
	http    *xhttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	log     *applogger.Logger
	cfg     ClientConfig
}

// New creates a Finnhub MarketData client.
func New(cfg ClientConfig, c cache.Service, limiter *ratelimit.Limiter, l *applogger.Logger) drepo.MarketData {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://finnhub.io/api/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 60
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 10
	}
	if cfg.QuoteTTL == 0 {
		cfg.QuoteTTL = 10 * time.Second
	}
	if cfg.InsiderTTL == 0 {
		cfg.InsiderTTL = 5 * time.Minute
	}
	if cfg.ContractTTL == 0 {
		cfg.ContractTTL = 10 * time.Minute
	}

	return &Client{
		http: xhttp.NewClient(cfg.BaseURL,
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithQueryParam("token", cfg.APIKey),
		),
		cache:   c,
		limiter: limiter,
		log:     l,
		cfg:     cfg,
	}
}

type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// Quote fetches the current quote. An unknown symbol comes back as an
// all-zero quote, not an error.
func (c *Client) Quote(ctx context.Context, symbol string) (models.PriceQuote, error) {
	key := fmt.Sprintf("quote:%s", symbol)
	return cache.GetOrFill(ctx, c.cache, key, c.cfg.QuoteTTL, func(ctx context.Context) (models.PriceQuote, error) {
		if err := c.waitForToken(ctx); err != nil {
			return models.PriceQuote{}, err
		}

		var resp quoteResponse
		q := url.Values{"symbol": {symbol}}
		if err := c.http.GetJSON(ctx, "/quote", q, &resp); err != nil {
			return models.PriceQuote{}, fmt.Errorf("finnhub quote %s: %w", symbol, err)
		}

		return models.PriceQuote{
			Symbol:        symbol,
			Price:         resp.Current,
			Change:        resp.Change,
			ChangePercent: resp.ChangePercent,
			High:          resp.High,
			Low:           resp.Low,
			Open:          resp.Open,
			PreviousClose: resp.PreviousClose,
			Timestamp:     resp.Timestamp,
		}, nil
	})
}

type insiderResponse struct {
	Data []models.InsiderTransaction `json:"data"`
}

// InsiderTransactions fetches insider filings for symbol in [from, to].
func (c *Client) InsiderTransactions(ctx context.Context, symbol, from, to string) ([]models.InsiderTransaction, error) {
	key := fmt.Sprintf("insider:%s:%s:%s", symbol, from, to)
	return cache.GetOrFill(ctx, c.cache, key, c.cfg.InsiderTTL, func(ctx context.Context) ([]models.InsiderTransaction, error) {
		if err := c.waitForToken(ctx); err != nil {
			return nil, err
		}

		var resp insiderResponse
		q := url.Values{"symbol": {symbol}, "from": {from}, "to": {to}}
		if err := c.http.GetJSON(ctx, "/stock/insider-transactions", q, &resp); err != nil {
			return nil, fmt.Errorf("finnhub insider %s: %w", symbol, err)
		}
		return resp.Data, nil
	})
}

type contractsResponse struct {
	Data []usaSpendingRow `json:"data"`
}

type usaSpendingRow struct {
	Symbol               string  `json:"symbol"`
	Recipient            string  `json:"recipientName"`
	Agency               string  `json:"awardingAgencyName"`
	TotalValue           float64 `json:"totalValue"`
	ActionDate           string  `json:"actionDate"`
	Description          string  `json:"narrativeDescription"`
	PerformanceStartDate string  `json:"performanceStartDate"`
	PerformanceEndDate   string  `json:"performanceEndDate"`
}

// GovernmentContracts fetches USA spending awards for symbol in [from, to].
func (c *Client) GovernmentContracts(ctx context.Context, symbol, from, to string) ([]models.GovernmentContract, error) {
	key := fmt.Sprintf("contracts:%s:%s:%s", symbol, from, to)
	return cache.GetOrFill(ctx, c.cache, key, c.cfg.ContractTTL, func(ctx context.Context) ([]models.GovernmentContract, error) {
		if err := c.waitForToken(ctx); err != nil {
			return nil, err
		}

		var resp contractsResponse
		q := url.Values{"symbol": {symbol}, "from": {from}, "to": {to}}
		if err := c.http.GetJSON(ctx, "/stock/usa-spending", q, &resp); err != nil {
			return nil, fmt.Errorf("finnhub usa-spending %s: %w", symbol, err)
		}

		contracts := make([]models.GovernmentContract, 0, len(resp.Data))
		for _, row := range resp.Data {
			contracts = append(contracts, models.GovernmentContract{
				Symbol:               row.Symbol,
				AwardDescription:     row.Description,
				TotalValue:           row.TotalValue,
				ActionDate:           row.ActionDate,
				Agency:               row.Agency,
				Recipient:            row.Recipient,
				PerformanceStartDate: row.PerformanceStartDate,
				PerformanceEndDate:   row.PerformanceEndDate,
			})
		}
		return contracts, nil
	})
}

func (c *Client) waitForToken(ctx context.Context) error {
	refillPerSec := float64(c.cfg.RatePerMinute) / 60.0
	return c.limiter.Wait(ctx, rateLimitKey, float64(c.cfg.RateBurst), refillPerSec)
}

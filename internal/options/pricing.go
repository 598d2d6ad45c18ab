package options

import (
	"errors"
	"fmt"
	"math"

	"SignalPull/internal/domain/models"
)

// ErrInvalidInput is returned when a pricing input is non-positive.
// The engine fails fast instead of clamping: clamped inputs would
// produce fabricated greeks.
var ErrInvalidInput = errors.New("invalid pricing input")

// RiskFreeRate is the fixed annualized rate used for discounting.
const RiskFreeRate = 0.045

const (
	premiumFloor = 0.10
	popFloor     = 5.0
	popCeil      = 50.0
	prob2xFloor  = 3.0
)

// StrikeForOffset computes spot*(1+offset) rounded to an exchange-style
// strike increment: nearest 10 above $500, nearest 5 above $100, nearest
// whole dollar otherwise. Offset may be negative for an ITM target.
func StrikeForOffset(spot, offset float64) float64 {
	target := spot * (1 + offset)
	switch {
	case spot > 500:
		return math.Round(target/10) * 10
	case spot > 100:
		return math.Round(target/5) * 5
	default:
		return math.Round(target)
	}
}

// normCDF is the Abramowitz-Stegun rational approximation of the
// standard normal CDF (5-term polynomial, ~1e-7 accuracy). The
// coefficients are fixed: downstream premium and probability figures
// must stay bit-compatible with the reference outputs.
func normCDF(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x) / math.Sqrt2
	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return 0.5 * (1.0 + sign*y)
}

func d1(s, k, t, r, sigma float64) float64 {
	return (math.Log(s/k) + (r+sigma*sigma/2)*t) / (sigma * math.Sqrt(t))
}

func checkInputs(spot, strike float64, dte int, iv float64) error {
	if spot <= 0 {
		return fmt.Errorf("%w: spot %.4f", ErrInvalidInput, spot)
	}
	if strike <= 0 {
		return fmt.Errorf("%w: strike %.4f", ErrInvalidInput, strike)
	}
	if dte <= 0 {
		return fmt.Errorf("%w: dte %d", ErrInvalidInput, dte)
	}
	if iv <= 0 {
		return fmt.Errorf("%w: iv %.4f", ErrInvalidInput, iv)
	}
	return nil
}

// PriceCall estimates a European call's fair value and sensitivities.
// Theta is per-day decay (negative); vega is per 1% IV point.
func PriceCall(spot, strike float64, dte int, iv float64) (models.OptionMetrics, error) {
	if err := checkInputs(spot, strike, dte, iv); err != nil {
		return models.OptionMetrics{}, err
	}

	t := float64(dte) / 365
	r := RiskFreeRate

	dOne := d1(spot, strike, t, r, iv)
	dTwo := dOne - iv*math.Sqrt(t)
	phi := math.Exp(-dOne * dOne / 2)

	delta := normCDF(dOne)
	gamma := phi / (spot * iv * math.Sqrt(2*math.Pi*t))
	theta := -(spot * iv * phi) / (2 * math.Sqrt(2*math.Pi*t)) / 365
	vega := spot * math.Sqrt(t) * phi / math.Sqrt(2*math.Pi) / 100
	callValue := spot*normCDF(dOne) - strike*math.Exp(-r*t)*normCDF(dTwo)
	rawPOP := normCDF(dTwo) * 100

	return models.OptionMetrics{
		Delta:               round2(delta),
		Gamma:               round3(gamma),
		Theta:               round2(theta),
		Vega:                round2(vega),
		Premium:             round2(math.Max(premiumFloor, callValue)),
		ProbabilityOfProfit: int(math.Round(clamp(rawPOP, popFloor, popCeil))),
		ProbabilityOf2x:     int(math.Round(math.Max(prob2xFloor, rawPOP*0.5))),
	}, nil
}

// ProbabilityOfProfitRaw returns N(d2)*100 without the display clamp.
// Used for deep-ITM setups where the clamped band would be misleading.
func ProbabilityOfProfitRaw(spot, strike float64, dte int, iv float64) (float64, error) {
	if err := checkInputs(spot, strike, dte, iv); err != nil {
		return 0, err
	}
	t := float64(dte) / 365
	dOne := d1(spot, strike, t, RiskFreeRate, iv)
	dTwo := dOne - iv*math.Sqrt(t)
	return normCDF(dTwo) * 100, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

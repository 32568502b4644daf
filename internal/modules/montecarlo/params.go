package montecarlo

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"

	"github.com/finsentinel/sentinel/pkg/formulas"
)

const (
	tradingDays = float64(formulas.TradingDaysPerYear)

	minAnnualDrift = 0.05
	maxAnnualDrift = 0.25
	minAnnualVol   = 0.10
	maxAnnualVol   = 0.40

	// Each digest window is reduced to one of 1000 evenly spaced buckets
	digestBuckets = 1000
)

var sqrtTradingDays = math.Sqrt(tradingDays)

// NormalizeSymbol is the canonical form a symbol is hashed in
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// DeriveParams maps a symbol to deterministic daily drift and volatility.
//
// The normalized symbol is hashed with SHA-256. Bytes 0-3 and 4-7 of the
// digest are read as two big-endian uint32 windows, each reduced modulo 1000
// into [0,1). The first selects an annual drift in [0.05, 0.25], the second an
// annual volatility in [0.10, 0.40]; both are then scaled to daily units with
// 252 trading days per year.
func DeriveParams(symbol string) AssetParams {
	normalized := NormalizeSymbol(symbol)
	digest := sha256.Sum256([]byte(normalized))

	u1 := unitFromWindow(digest[0:4])
	u2 := unitFromWindow(digest[4:8])

	annualDrift := minAnnualDrift + (maxAnnualDrift-minAnnualDrift)*u1
	annualVol := minAnnualVol + (maxAnnualVol-minAnnualVol)*u2

	return AssetParams{
		Symbol:          normalized,
		DailyDrift:      annualDrift / tradingDays,
		DailyVolatility: annualVol / sqrtTradingDays,
	}
}

// DeriveAll derives parameters for every asset, preserving request order
func DeriveAll(assets []AssetWeight) []AssetParams {
	params := make([]AssetParams, len(assets))
	for i, asset := range assets {
		params[i] = DeriveParams(asset.Symbol)
	}
	return params
}

func unitFromWindow(window []byte) float64 {
	return float64(binary.BigEndian.Uint32(window)%digestBuckets) / digestBuckets
}

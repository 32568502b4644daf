package montecarlo

import "time"

// AssetWeight is one (symbol, weight) pair of a portfolio request.
// Weights are used as given and are never normalized.
type AssetWeight struct {
	Symbol string  `json:"symbol" validate:"required"`
	Weight float64 `json:"weight"`
}

// PortfolioInput is the wire shape of a simulation request. Simulations and
// HorizonDays are pointers so that an absent field (default applies) can be
// told apart from an explicit zero (rejected).
type PortfolioInput struct {
	Assets      []AssetWeight          `json:"assets"`
	Simulations *int                   `json:"simulations,omitempty"`
	HorizonDays *int                   `json:"horizonDays,omitempty"`
	Constraints map[string]interface{} `json:"constraints,omitempty"`
}

// PortfolioRequest is a fully resolved simulation request
type PortfolioRequest struct {
	Assets      []AssetWeight          `json:"assets" validate:"required,min=1,dive"`
	Simulations int                    `json:"simulations" validate:"gt=0"`
	HorizonDays int                    `json:"horizonDays" validate:"gt=0"`
	Constraints map[string]interface{} `json:"constraints,omitempty"`
}

// Weights returns the weight vector aligned with the asset order
func (r PortfolioRequest) Weights() []float64 {
	weights := make([]float64, len(r.Assets))
	for i, asset := range r.Assets {
		weights[i] = asset.Weight
	}
	return weights
}

// Draws returns the size of the draw tensor the request will materialize
func (r PortfolioRequest) Draws() int64 {
	return int64(r.Simulations) * int64(r.HorizonDays) * int64(len(r.Assets))
}

// Defaults fills in fields a caller left out
type Defaults struct {
	Simulations int
	HorizonDays int
}

// Resolve applies defaults to absent fields and returns the request the
// engine runs. Explicit values, including invalid ones, pass through as is.
func (in PortfolioInput) Resolve(d Defaults) PortfolioRequest {
	req := PortfolioRequest{
		Assets:      in.Assets,
		Simulations: d.Simulations,
		HorizonDays: d.HorizonDays,
		Constraints: in.Constraints,
	}
	if in.Simulations != nil {
		req.Simulations = *in.Simulations
	}
	if in.HorizonDays != nil {
		req.HorizonDays = *in.HorizonDays
	}
	return req
}

// AssetParams are the per-asset daily sampling parameters
type AssetParams struct {
	Symbol          string  `json:"symbol"`
	DailyDrift      float64 `json:"dailyDrift"`
	DailyVolatility float64 `json:"dailyVolatility"`
}

// AnnualizedDrift converts the daily drift back to annual units
func (p AssetParams) AnnualizedDrift() float64 {
	return p.DailyDrift * tradingDays
}

// AnnualizedVolatility converts the daily volatility back to annual units
func (p AssetParams) AnnualizedVolatility() float64 {
	return p.DailyVolatility * sqrtTradingDays
}

// PathSet holds the terminal outcome of every simulated portfolio path
type PathSet struct {
	TerminalValues  []float64
	TerminalReturns []float64
}

// PathSummary describes the distribution of terminal portfolio values
type PathSummary struct {
	MinFinal    float64 `json:"minFinal"`
	P25Final    float64 `json:"p25Final"`
	MedianFinal float64 `json:"medianFinal"`
	P75Final    float64 `json:"p75Final"`
	MaxFinal    float64 `json:"maxFinal"`
	Simulations int     `json:"simulations"`
	HorizonDays int     `json:"horizonDays"`
}

// RiskReport is the result of one simulation request
type RiskReport struct {
	ReportID              string                 `json:"reportId"`
	VaR95                 float64                `json:"var95"`
	CVaR95                float64                `json:"cvar95"`
	ProbabilityOfLoss     float64                `json:"probabilityOfLoss"`
	ExpectedReturn        float64                `json:"expectedReturn"`
	SimulatedPathsSummary PathSummary            `json:"simulatedPathsSummary"`
	Confidence            float64                `json:"confidence"` // Heuristic dispersion proxy, not a calibrated interval
	ErrorRate             float64                `json:"errorRate"`
	Timestamp             time.Time              `json:"timestamp"`
	Constraints           map[string]interface{} `json:"constraints,omitempty"`
}

// BatchRequest is the wire shape of a batch simulation request
type BatchRequest struct {
	Portfolios []PortfolioInput `json:"portfolios"`
}

// BatchResult is the outcome of one portfolio of a batch, in input order
type BatchResult struct {
	Index  int         `json:"index"`
	Report *RiskReport `json:"report,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// BatchResponse is the response of a batch simulation
type BatchResponse struct {
	Results []BatchResult `json:"results"`
	Errors  []string      `json:"errors"`
}

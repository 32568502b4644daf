package montecarlo

// DemoPortfolio is a named request for one-click simulation
type DemoPortfolio struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Request     PortfolioInput `json:"request"`
}

// DemoPortfolios returns the built-in demonstration portfolios. Each call
// returns fresh values.
func DemoPortfolios() []DemoPortfolio {
	return []DemoPortfolio{
		{
			Name:        "Balanced Tech",
			Description: "Large-cap technology basket split across four names",
			Request: PortfolioInput{
				Assets: []AssetWeight{
					{Symbol: "AAPL", Weight: 0.30},
					{Symbol: "MSFT", Weight: 0.30},
					{Symbol: "GOOGL", Weight: 0.20},
					{Symbol: "NVDA", Weight: 0.20},
				},
				Simulations: intPtr(1000),
				HorizonDays: intPtr(30),
			},
		},
		{
			Name:        "Concentrated Single Name",
			Description: "Entire position in one stock over a quarter",
			Request: PortfolioInput{
				Assets: []AssetWeight{
					{Symbol: "TSLA", Weight: 1.0},
				},
				Simulations: intPtr(1000),
				HorizonDays: intPtr(63),
			},
		},
		{
			Name:        "Defensive Mix",
			Description: "Consumer staples and utilities held for a year",
			Request: PortfolioInput{
				Assets: []AssetWeight{
					{Symbol: "JNJ", Weight: 0.25},
					{Symbol: "PG", Weight: 0.25},
					{Symbol: "KO", Weight: 0.25},
					{Symbol: "NEE", Weight: 0.25},
				},
				Simulations: intPtr(2000),
				HorizonDays: intPtr(252),
			},
		},
	}
}

func intPtr(v int) *int {
	return &v
}

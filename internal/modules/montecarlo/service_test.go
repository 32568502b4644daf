package montecarlo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	outcome     string
	assets      int
	simulations int
	horizonDays int
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (f *fakeRecorder) ObserveSimulation(outcome string, assets, simulations, horizonDays int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, recordedRun{outcome, assets, simulations, horizonDays})
}

func (f *fakeRecorder) outcomes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.runs))
	for i, r := range f.runs {
		out[i] = r.outcome
	}
	return out
}

func newTestService(recorder Recorder) *Service {
	return NewService(ServiceConfig{
		Seed:     DefaultSeed,
		Defaults: Defaults{Simulations: 200, HorizonDays: 10},
		Limits:   DefaultLimits(),
		Workers:  2,
		Timeout:  10 * time.Second,
	}, recorder, zerolog.Nop())
}

func TestNewService_DefaultWorkers(t *testing.T) {
	service := NewService(ServiceConfig{}, nil, zerolog.Nop())

	assert.GreaterOrEqual(t, service.Workers(), 2)
}

func TestService_SimulateAppliesDefaults(t *testing.T) {
	recorder := &fakeRecorder{}
	service := newTestService(recorder)

	report, err := service.Simulate(context.Background(), PortfolioInput{
		Assets: []AssetWeight{{Symbol: "AAPL", Weight: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 200, report.SimulatedPathsSummary.Simulations)
	assert.Equal(t, 10, report.SimulatedPathsSummary.HorizonDays)
	require.Len(t, recorder.runs, 1)
	assert.Equal(t, recordedRun{OutcomeOK, 1, 200, 10}, recorder.runs[0])
}

func TestService_SimulateExplicitZeroRejected(t *testing.T) {
	recorder := &fakeRecorder{}
	service := newTestService(recorder)
	zero := 0

	_, err := service.Simulate(context.Background(), PortfolioInput{
		Assets:      []AssetWeight{{Symbol: "AAPL", Weight: 1}},
		Simulations: &zero,
	})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, []string{OutcomeInvalid}, recorder.outcomes())
}

func TestService_SimulateCancelled(t *testing.T) {
	recorder := &fakeRecorder{}
	service := newTestService(recorder)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Simulate(ctx, PortfolioInput{
		Assets: []AssetWeight{{Symbol: "AAPL", Weight: 1}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{OutcomeTimeout}, recorder.outcomes())
}

func TestService_SimulateMatchesEngine(t *testing.T) {
	service := newTestService(nil)
	sims, days := 1000, 30

	viaService, err := service.Simulate(context.Background(), PortfolioInput{
		Assets:      scenarioRequest().Assets,
		Simulations: &sims,
		HorizonDays: &days,
	})
	require.NoError(t, err)

	viaEngine, err := NewEngine(DefaultSeed, DefaultLimits()).Run(context.Background(), scenarioRequest())
	require.NoError(t, err)

	assert.Equal(t, stripStamps(viaEngine), stripStamps(viaService))
}

func TestService_SimulateBatch(t *testing.T) {
	recorder := &fakeRecorder{}
	service := newTestService(recorder)
	zero := 0

	inputs := []PortfolioInput{
		{Assets: []AssetWeight{{Symbol: "AAPL", Weight: 1}}},
		{Assets: []AssetWeight{{Symbol: "MSFT", Weight: 1}}, HorizonDays: &zero},
		{Assets: []AssetWeight{{Symbol: "KO", Weight: 0.5}, {Symbol: "PG", Weight: 0.5}}},
	}

	response, err := service.SimulateBatch(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, response.Results, 3)
	for i, result := range response.Results {
		assert.Equal(t, i, result.Index)
	}
	require.NotNil(t, response.Results[0].Report)
	assert.Nil(t, response.Results[1].Report)
	assert.Contains(t, response.Results[1].Error, "horizonDays")
	require.NotNil(t, response.Results[2].Report)
	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], "portfolio 1")
	assert.Len(t, recorder.outcomes(), 3)

	single, err := service.Simulate(context.Background(), inputs[0])
	require.NoError(t, err)
	assert.Equal(t, stripStamps(single), stripStamps(*response.Results[0].Report))
}

func TestService_SimulateBatchLimits(t *testing.T) {
	service := newTestService(nil)

	_, err := service.SimulateBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	tooMany := make([]PortfolioInput, MaxBatchPortfolios+1)
	_, err = service.SimulateBatch(context.Background(), tooMany)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Params(t *testing.T) {
	service := newTestService(nil)

	params, err := service.Params("aapl")
	require.NoError(t, err)
	assert.Equal(t, DeriveParams("AAPL"), params)

	_, err = service.Params("  ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_RefreshDemoReports(t *testing.T) {
	service := newTestService(nil)

	require.NoError(t, service.RefreshDemoReports(context.Background()))

	entries := service.Cache().All()
	require.Len(t, entries, len(DemoPortfolios()))
	for _, entry := range entries {
		assert.Empty(t, entry.Error)
		require.NotNil(t, entry.Report, entry.Name)
		assert.LessOrEqual(t, entry.Report.CVaR95, entry.Report.VaR95)
		assert.False(t, entry.RefreshedAt.IsZero())
	}

	tech, ok := service.Cache().Get("Balanced Tech")
	require.True(t, ok)
	assert.Equal(t, 30, tech.Report.SimulatedPathsSummary.HorizonDays)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, OutcomeOK},
		{"invalid", invalid("assets", "is required"), OutcomeInvalid},
		{"deadline", context.DeadlineExceeded, OutcomeTimeout},
		{"degenerate", ErrNumericDegenerate, OutcomeDegenerate},
		{"other", assert.AnError, OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Outcome(tt.err))
		})
	}
}

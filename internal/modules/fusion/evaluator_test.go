package fusion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func mustProfile(t *testing.T, name string) Profile {
	t.Helper()
	p, ok := LookupProfile(name)
	require.True(t, ok, name)
	return p
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		profile  string
		score    float64
		expected Decision
	}{
		{"balanced", 0.1, DecisionAllow},
		{"balanced", 0.5, DecisionReview},
		{"balanced", 0.9, DecisionBlock},
		{"balanced", 0.40, DecisionReview},
		{"balanced", 0.75, DecisionReview},
		{"strict", 0.30, DecisionReview},
		{"strict", 0.70, DecisionBlock},
		{"permissive", 0.50, DecisionAllow},
		{"permissive", 0.95, DecisionBlock},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			result := Evaluate(Input{RiskScore: score(tt.score)}, mustProfile(t, tt.profile), time.Now())
			assert.Equal(t, tt.expected, result.Decision, "score %v", tt.score)
			assert.Empty(t, result.GuardTriggered)
			assert.Equal(t, tt.profile, result.PolicyProfile)
		})
	}
}

func TestEvaluate_StaleHandling(t *testing.T) {
	tests := []struct {
		profile  string
		expected Decision
		guard    string
	}{
		{"strict", DecisionBlock, GuardStaleReject},
		{"balanced", DecisionReview, GuardStaleReview},
		{"permissive", DecisionAllow, ""},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			result := Evaluate(Input{RiskScore: score(0.1), Stale: true}, mustProfile(t, tt.profile), time.Now())
			assert.Equal(t, tt.expected, result.Decision)
			assert.Equal(t, tt.guard, result.GuardTriggered)
		})
	}
}

func TestEvaluate_UncertaintyGuard(t *testing.T) {
	tests := []struct {
		name        string
		profile     string
		uncertainty float64
		triggered   bool
	}{
		{"balanced above limit", "balanced", 0.6, true},
		{"balanced at limit", "balanced", 0.5, false},
		{"strict amplifies", "strict", 0.4, true},
		{"permissive dampens", "permissive", 0.9, false},
		{"zero uncertainty", "strict", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(Input{RiskScore: score(0.1), Uncertainty: score(tt.uncertainty)}, mustProfile(t, tt.profile), time.Now())
			if tt.triggered {
				assert.Equal(t, DecisionReview, result.Decision)
				assert.Equal(t, GuardUncertainty, result.GuardTriggered)
			} else {
				assert.Equal(t, DecisionAllow, result.Decision)
				assert.Empty(t, result.GuardTriggered)
			}
		})
	}
}

func TestEvaluate_StaleTakesPrecedence(t *testing.T) {
	result := Evaluate(Input{RiskScore: score(0.1), Uncertainty: score(1), Stale: true}, mustProfile(t, "strict"), time.Now())

	assert.Equal(t, DecisionBlock, result.Decision)
	assert.Equal(t, GuardStaleReject, result.GuardTriggered)
}

func TestEvaluate_ResultFields(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	metadata := json.RawMessage(`{"source":"ensemble"}`)

	result := Evaluate(Input{RiskScore: score(0.33), Metadata: metadata}, mustProfile(t, "strict"), now)

	assert.Equal(t, 0.33, result.RiskScore)
	assert.Equal(t, Thresholds{AllowBelow: 0.25, BlockAbove: 0.65}, result.ThresholdsApplied)
	assert.Equal(t, metadata, result.Metadata)
	assert.Equal(t, time.UTC, result.Timestamp.Location())
	assert.True(t, now.Equal(result.Timestamp))
}

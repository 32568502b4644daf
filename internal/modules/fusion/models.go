// Package fusion turns a composite risk score into an allow/review/block
// decision under a named policy profile.
package fusion

import (
	"encoding/json"
	"time"
)

// Decision is the outcome of a fusion evaluation
type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionReview Decision = "review"
	DecisionBlock  Decision = "block"
)

// StaleHandling says what a profile does with stale input signals
type StaleHandling string

const (
	StaleReject StaleHandling = "reject"
	StaleReview StaleHandling = "review"
	StaleAllow  StaleHandling = "allow"
)

// Guards that can override the threshold decision
const (
	GuardStaleReject = "stale_reject"
	GuardStaleReview = "stale_review"
	GuardUncertainty = "uncertainty"
)

// Thresholds split the risk score range: below AllowBelow allows, above
// BlockAbove blocks, anything in between goes to review.
type Thresholds struct {
	AllowBelow float64 `json:"allow_below"`
	BlockAbove float64 `json:"block_above"`
}

// Profile is a named set of decision rules
type Profile struct {
	Name                        string        `json:"name"`
	DecisionThresholds          Thresholds    `json:"decision_thresholds"`
	UncertaintyGuardSensitivity float64       `json:"uncertainty_guard_sensitivity"`
	StaleHandling               StaleHandling `json:"stale_handling"`
}

// Input is one set of risk signals to evaluate
type Input struct {
	RiskScore   *float64        `json:"risk_score" validate:"required,gte=0,lte=1"`
	Uncertainty *float64        `json:"uncertainty,omitempty" validate:"omitempty,gte=0,lte=1"`
	Stale       bool            `json:"stale,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"` // Echoed verbatim whenever present, even as {}
}

// Result is the decision for one Input
type Result struct {
	Decision          Decision        `json:"decision"`
	RiskScore         float64         `json:"risk_score"`
	PolicyProfile     string          `json:"policy_profile"`
	ThresholdsApplied Thresholds      `json:"thresholds_applied"`
	GuardTriggered    string          `json:"guard_triggered,omitempty"`
	Metadata          json.RawMessage `json:"metadata,omitempty"`
	Timestamp         time.Time       `json:"ts"`
}

package fusion

import "time"

// uncertaintyGuardLimit is the effective uncertainty above which a decision
// is escalated to review
const uncertaintyGuardLimit = 0.5

// Evaluate decides on validated input under profile. Guards run in order:
// stale signals, then uncertainty, then the score thresholds.
func Evaluate(in Input, profile Profile, now time.Time) Result {
	score := *in.RiskScore
	thresholds := profile.DecisionThresholds

	var decision Decision
	var guard string

	if in.Stale {
		switch profile.StaleHandling {
		case StaleReject:
			decision, guard = DecisionBlock, GuardStaleReject
		case StaleReview:
			decision, guard = DecisionReview, GuardStaleReview
		}
	}

	if decision == "" && in.Uncertainty != nil && *in.Uncertainty > 0 {
		if *in.Uncertainty*profile.UncertaintyGuardSensitivity > uncertaintyGuardLimit {
			decision, guard = DecisionReview, GuardUncertainty
		}
	}

	if decision == "" {
		switch {
		case score < thresholds.AllowBelow:
			decision = DecisionAllow
		case score > thresholds.BlockAbove:
			decision = DecisionBlock
		default:
			decision = DecisionReview
		}
	}

	return Result{
		Decision:          decision,
		RiskScore:         score,
		PolicyProfile:     profile.Name,
		ThresholdsApplied: thresholds,
		GuardTriggered:    guard,
		Metadata:          in.Metadata,
		Timestamp:         now.UTC(),
	}
}

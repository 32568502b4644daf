package fusion

import (
	"time"

	"github.com/rs/zerolog"
)

// Recorder receives one observation per decision
type Recorder interface {
	ObserveDecision(profile, decision, guard string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveDecision(string, string, string) {}

// Service evaluates inputs against the store's active profile
type Service struct {
	store    *ProfileStore
	recorder Recorder
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a new fusion service. A nil recorder disables observations.
func NewService(store *ProfileStore, recorder Recorder, log zerolog.Logger) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		store:    store,
		recorder: recorder,
		now:      time.Now,
		log:      log.With().Str("service", "fusion").Logger(),
	}
}

// Evaluate validates in and decides on it under the active profile
func (s *Service) Evaluate(in Input) (Result, error) {
	if err := ValidateInput(in); err != nil {
		return Result{}, err
	}

	result := Evaluate(in, s.store.Active(), s.now())
	s.recorder.ObserveDecision(result.PolicyProfile, string(result.Decision), result.GuardTriggered)

	s.log.Debug().
		Str("profile", result.PolicyProfile).
		Str("decision", string(result.Decision)).
		Str("guard", result.GuardTriggered).
		Float64("risk_score", result.RiskScore).
		Msg("Fusion decision")

	return result, nil
}

// ActiveProfile returns the profile evaluations currently use
func (s *Service) ActiveProfile() Profile {
	return s.store.Active()
}

// SetProfile switches the active profile
func (s *Service) SetProfile(name string) (Profile, error) {
	previous := s.store.Active().Name
	p, err := s.store.Set(name)
	if err != nil {
		return Profile{}, err
	}

	s.log.Info().
		Str("from", previous).
		Str("to", p.Name).
		Msg("Fusion profile switched")
	return p, nil
}

// Profiles returns every profile definition
func (s *Service) Profiles() []Profile {
	return Profiles()
}

package fusion

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultProfile is active until something switches it
const DefaultProfile = "balanced"

var profileNames = []string{"strict", "balanced", "permissive"}

var profiles = map[string]Profile{
	"strict": {
		Name:                        "strict",
		DecisionThresholds:          Thresholds{AllowBelow: 0.25, BlockAbove: 0.65},
		UncertaintyGuardSensitivity: 1.5,
		StaleHandling:               StaleReject,
	},
	"balanced": {
		Name:                        "balanced",
		DecisionThresholds:          Thresholds{AllowBelow: 0.40, BlockAbove: 0.75},
		UncertaintyGuardSensitivity: 1.0,
		StaleHandling:               StaleReview,
	},
	"permissive": {
		Name:                        "permissive",
		DecisionThresholds:          Thresholds{AllowBelow: 0.55, BlockAbove: 0.90},
		UncertaintyGuardSensitivity: 0.5,
		StaleHandling:               StaleAllow,
	},
}

// ProfileNames returns the known profile names, strictest first
func ProfileNames() []string {
	names := make([]string, len(profileNames))
	copy(names, profileNames)
	return names
}

// Profiles returns every profile definition, strictest first
func Profiles() []Profile {
	out := make([]Profile, 0, len(profileNames))
	for _, name := range profileNames {
		out = append(out, profiles[name])
	}
	return out
}

// LookupProfile returns the profile with the given name
func LookupProfile(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileStore holds the active profile. It is safe for concurrent use.
type ProfileStore struct {
	mu     sync.RWMutex
	active string
}

// NewProfileStore creates a store with initial as the active profile.
// An empty name selects DefaultProfile.
func NewProfileStore(initial string) (*ProfileStore, error) {
	if initial == "" {
		initial = DefaultProfile
	}
	if _, ok := profiles[initial]; !ok {
		return nil, unknownProfile(initial)
	}
	return &ProfileStore{active: initial}, nil
}

// Active returns the active profile
func (s *ProfileStore) Active() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return profiles[s.active]
}

// Set switches the active profile. An unknown name leaves it unchanged.
func (s *ProfileStore) Set(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, unknownProfile(name)
	}

	s.mu.Lock()
	s.active = name
	s.mu.Unlock()

	return p, nil
}

// Reset restores DefaultProfile
func (s *ProfileStore) Reset() {
	s.mu.Lock()
	s.active = DefaultProfile
	s.mu.Unlock()
}

func unknownProfile(name string) error {
	return fmt.Errorf("%w: invalid profile %q, valid: %s", ErrInvalidInput, name, strings.Join(profileNames, ", "))
}

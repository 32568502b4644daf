package montecarlo

import (
	"sort"
	"sync"
	"time"
)

// CachedReport is the last simulation of a named portfolio
type CachedReport struct {
	Name        string      `json:"name"`
	Report      *RiskReport `json:"report,omitempty"`
	Error       string      `json:"error,omitempty"`
	RefreshedAt time.Time   `json:"refreshedAt"`
}

// ReportCache keeps the latest report per named portfolio
type ReportCache struct {
	mu      sync.RWMutex
	reports map[string]CachedReport
}

// NewReportCache creates an empty cache
func NewReportCache() *ReportCache {
	return &ReportCache{
		reports: make(map[string]CachedReport),
	}
}

// Store replaces the entry for name. A non-nil err is kept instead of a report.
func (c *ReportCache) Store(name string, report *RiskReport, err error, at time.Time) {
	entry := CachedReport{
		Name:        name,
		Report:      report,
		RefreshedAt: at,
	}
	if err != nil {
		entry.Report = nil
		entry.Error = err.Error()
	}

	c.mu.Lock()
	c.reports[name] = entry
	c.mu.Unlock()
}

// Get returns the entry for name
func (c *ReportCache) Get(name string) (CachedReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.reports[name]
	return entry, ok
}

// All returns every entry sorted by name
func (c *ReportCache) All() []CachedReport {
	c.mu.RLock()
	entries := make([]CachedReport, 0, len(c.reports))
	for _, entry := range c.reports {
		entries = append(entries, entry)
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Len returns the number of cached entries
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}

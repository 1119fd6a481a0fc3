// Package healthcheck provides dependency health checks surfaced on the
// health endpoint.
package healthcheck

import (
	"context"
	"sync"
	"time"
)

// Status of a single check or of the whole report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of a single probe.
type CheckResult struct {
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ms"`
}

// Report aggregates all check results.
type Report struct {
	Status    Status                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp time.Time              `json:"timestamp"`
}

type registered struct {
	check    CheckFunc
	critical bool
}

// Checker runs registered dependency checks. A failing critical check makes
// the report unhealthy; a failing optional check only degrades it.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]registered
	timeout time.Duration
}

// New creates a Checker with the given per-check timeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		checks:  make(map[string]registered),
		timeout: timeout,
	}
}

// Register adds a critical check under name.
func (c *Checker) Register(name string, check CheckFunc) {
	c.register(name, check, true)
}

// RegisterOptional adds a non-critical check: failure degrades the report
// instead of failing it. Used for features that are allowed to be disabled.
func (c *Checker) RegisterOptional(name string, check CheckFunc) {
	c.register(name, check, false)
}

func (c *Checker) register(name string, check CheckFunc, critical bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = registered{check: check, critical: critical}
}

// Run executes every registered check sequentially and aggregates the
// results.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]registered, len(c.checks))
	for name, reg := range c.checks {
		checks[name] = reg
	}
	c.mu.RUnlock()

	report := Report{
		Status:    StatusHealthy,
		Checks:    make(map[string]CheckResult, len(checks)),
		Timestamp: time.Now(),
	}

	for name, reg := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		start := time.Now()
		err := reg.check(checkCtx)
		cancel()

		result := CheckResult{
			Status:   StatusHealthy,
			Duration: time.Since(start) / time.Millisecond,
		}
		if err != nil {
			result.Error = err.Error()
			if reg.critical {
				result.Status = StatusUnhealthy
				report.Status = StatusUnhealthy
			} else {
				result.Status = StatusDegraded
				if report.Status == StatusHealthy {
					report.Status = StatusDegraded
				}
			}
		}
		report.Checks[name] = result
	}

	return report
}

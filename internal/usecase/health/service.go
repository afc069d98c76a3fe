package health

import (
	"context"
	"time"
)

// Status is the overall service health.
type Status string

const (
	// Healthy means every check passed.
	Healthy Status = "ok"
	// Degraded means an optional dependency failed.
	Degraded Status = "degraded"
	// Unhealthy means the contact database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one dependency check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

const (
	checkDatabase  = "database"
	checkCampaigns = "campaigns"
)

const defaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service checks the contact database and, when configured, the campaign store.
type Service struct {
	db        Pinger
	campaigns Pinger
	timeout   time.Duration
}

// New creates a Service. campaigns can be nil.
func New(db, campaigns Pinger) *Service {
	return &Service{db: db, campaigns: campaigns, timeout: defaultCheckTimeout}
}

// WithTimeout bounds each individual check.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check pings every dependency. The database is required; a failing
// campaign store only degrades the service.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{checkDatabase: s.ping(ctx, s.db)}
	if s.campaigns != nil {
		checks[checkCampaigns] = s.ping(ctx, s.campaigns)
	}

	status := Healthy
	switch {
	case checks[checkDatabase] == CheckError:
		status = Unhealthy
	case checks[checkCampaigns] == CheckError:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) ping(ctx context.Context, p Pinger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}

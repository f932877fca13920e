package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckSettings = "settings"
	CheckDatabase = "database"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	settings SettingsChecker
	db       DBPinger
}

// New creates a Service. db is nil when settings are kept in memory only.
func New(settings SettingsChecker, db DBPinger) *Service {
	return &Service{settings: settings, db: db}
}

// Check runs health checks against all components.
// A broken settings document is Unhealthy: the API would serve invalid values.
// An unreachable database only degrades the service since writes still apply in memory.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks[CheckSettings] = result(s.settings.Check(ctx))
	if s.db != nil {
		checks[CheckDatabase] = result(s.db.Ping(ctx))
	}

	status := Healthy
	switch {
	case checks[CheckSettings] == CheckError:
		status = Unhealthy
	case checks[CheckDatabase] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}

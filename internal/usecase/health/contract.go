package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SettingsChecker verifies the in-memory settings document.
type SettingsChecker interface {
	Check(ctx context.Context) error
}

package settings

import (
	"context"

	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
)

// Repository persists settings snapshots across restarts.
// Load returns found=false when no snapshot has been saved yet.
type Repository interface {
	Load(ctx context.Context) (s domset.SystemSettings, found bool, err error)
	Save(ctx context.Context, s domset.SystemSettings) error
}

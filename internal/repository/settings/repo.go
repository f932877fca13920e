package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/agentdesk/internal/db"
	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
)

// DefaultKey is the snapshot key used when no prefix is configured.
const DefaultKey = "agentdesk:settings"

// store is the consumer interface for snapshot operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo persists the settings document as one JSON value.
type Repo struct {
	store store
	key   string
	now   func() time.Time
}

// New creates a snapshot repository. keyPrefix is prepended to "settings".
func New(s store, keyPrefix string) *Repo {
	key := DefaultKey
	if keyPrefix != "" {
		key = keyPrefix + "settings"
	}
	return &Repo{store: s, key: key, now: time.Now}
}

// Key returns the key the snapshot is stored under.
func (r *Repo) Key() string { return r.key }

// Load reads the snapshot. found is false when nothing has been saved yet.
func (r *Repo) Load(ctx context.Context) (domset.SystemSettings, bool, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domset.SystemSettings{}, false, nil
		}
		return domset.SystemSettings{}, false, fmt.Errorf("settings GET %s: %w", r.key, err)
	}

	var row snapshotRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domset.SystemSettings{}, false, fmt.Errorf("settings GET %s decode: %w", r.key, err)
	}
	if row.Version != snapshotVersion {
		return domset.SystemSettings{}, false,
			fmt.Errorf("settings GET %s: unsupported snapshot version %d", r.key, row.Version)
	}
	return row.toDomain(), true, nil
}

// Save overwrites the snapshot.
func (r *Repo) Save(ctx context.Context, s domset.SystemSettings) error {
	data, err := json.Marshal(snapshotFromDomain(s, r.now().UnixMilli()))
	if err != nil {
		return fmt.Errorf("settings SET %s encode: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("settings SET %s: %w", r.key, err)
	}
	return nil
}

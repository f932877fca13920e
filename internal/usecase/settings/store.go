package settings

import (
	"sync"

	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
)

// Store holds the current settings document for the life of the process.
// Writers validate and swap under the write lock; readers share the read lock
// and always receive copies.
type Store struct {
	mu      sync.RWMutex
	current domset.SystemSettings
}

// NewStore creates a Store holding the default document.
func NewStore() *Store {
	return &Store{current: domset.Default()}
}

// Get returns a copy of the current document.
func (s *Store) Get() domset.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// AgentParameters returns a copy of the agent parameters section.
func (s *Store) AgentParameters() domset.AgentParameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AgentParameters.Clone()
}

// ResourceManagement returns the resource management section.
func (s *Store) ResourceManagement() domset.ResourceManagement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ResourceManagement
}

// AccessPermissions returns a copy of the access permissions section.
func (s *Store) AccessPermissions() domset.AccessPermissions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AccessPermissions.Clone()
}

// Replace validates next and swaps the whole document. On error the store is unchanged.
func (s *Store) Replace(next domset.SystemSettings) (domset.SystemSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	validated, err := domset.New(next.AgentParameters, next.ResourceManagement, next.AccessPermissions)
	if err != nil {
		return domset.SystemSettings{}, err //nolint:wrapcheck // ValidationError names the field
	}
	s.current = validated
	return s.current.Clone(), nil
}

// ReplaceAgentParameters re-validates the whole section and swaps it, leaving the others untouched.
func (s *Store) ReplaceAgentParameters(ap domset.AgentParameters) (domset.AgentParameters, error) {
	ap = ap.Clone()
	if err := ap.Validate(); err != nil {
		return domset.AgentParameters{}, err //nolint:wrapcheck // ValidationError names the field
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.AgentParameters = ap
	return ap.Clone(), nil
}

// ReplaceResourceManagement re-validates the whole section and swaps it.
func (s *Store) ReplaceResourceManagement(rm domset.ResourceManagement) (domset.ResourceManagement, error) {
	if err := rm.Validate(); err != nil {
		return domset.ResourceManagement{}, err //nolint:wrapcheck // ValidationError names the field
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ResourceManagement = rm
	return rm, nil
}

// ReplaceAccessPermissions re-validates the whole section and swaps it.
func (s *Store) ReplaceAccessPermissions(perms domset.AccessPermissions) (domset.AccessPermissions, error) {
	perms = perms.Clone()
	if err := perms.Validate(); err != nil {
		return domset.AccessPermissions{}, err //nolint:wrapcheck // ValidationError names the field
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.AccessPermissions = perms
	return perms.Clone(), nil
}

// Reset replaces the document with defaults. Always succeeds.
func (s *Store) Reset() domset.SystemSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domset.Default()
	return s.current.Clone()
}

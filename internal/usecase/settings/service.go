package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/agentdesk/internal/domain"
	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
	logpkg "github.com/kailas-cloud/agentdesk/internal/logger"
	"github.com/kailas-cloud/agentdesk/internal/metrics"
)

const sectionAll = "all"

// persistTimeout bounds a snapshot save once it is detached from the request.
const persistTimeout = 5 * time.Second

// Options lists the legal enum values, for client-side form population.
type Options struct {
	AgentTypes           []enum.AgentType
	AgentSpecializations []enum.AgentSpecialization
	RewardStructures     []enum.RewardStructure
	UserRoles            []enum.UserRole
}

// Service exposes the settings store to the transport layer.
type Service struct {
	store  *Store
	repo   Repository
	logger *zap.Logger

	// writeMu orders mutate+persist so snapshots reach the repository in mutation order.
	writeMu sync.Mutex
}

// New creates a Service. repo can be nil (in-memory only).
func New(store *Store, repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, repo: repo, logger: logger}
}

// Restore loads the persisted snapshot, if any. An invalid snapshot is logged and
// the store keeps its defaults; only repository failures are returned.
func (s *Service) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	snap, found, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore settings: %w: %w", domain.ErrPersistence, err)
	}
	if !found {
		s.logger.Info("No settings snapshot found, using defaults")
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.store.Replace(snap); err != nil {
		s.logger.Warn("Ignoring invalid settings snapshot", zap.Error(err))
		return nil
	}
	s.logger.Info("Settings restored from snapshot")
	return nil
}

// Get returns the current settings document.
func (s *Service) Get(_ context.Context) domset.SystemSettings {
	return s.store.Get()
}

// AgentParameters returns the agent parameters section.
func (s *Service) AgentParameters(_ context.Context) domset.AgentParameters {
	return s.store.AgentParameters()
}

// ResourceManagement returns the resource management section.
func (s *Service) ResourceManagement(_ context.Context) domset.ResourceManagement {
	return s.store.ResourceManagement()
}

// AccessPermissions returns the access permissions section.
func (s *Service) AccessPermissions(_ context.Context) domset.AccessPermissions {
	return s.store.AccessPermissions()
}

// Section returns the named section as its concrete type.
func (s *Service) Section(ctx context.Context, section domset.Section) (any, error) {
	switch section {
	case domset.SectionAgentParameters:
		return s.AgentParameters(ctx), nil
	case domset.SectionResourceManagement:
		return s.ResourceManagement(ctx), nil
	case domset.SectionAccessPermissions:
		return s.AccessPermissions(ctx), nil
	default:
		return nil, fmt.Errorf("settings section %q: %w", section, domain.ErrNotFound)
	}
}

// Replace validates and swaps the whole document.
func (s *Service) Replace(ctx context.Context, next domset.SystemSettings) (domset.SystemSettings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.Replace(next)
	if err != nil {
		return domset.SystemSettings{}, s.rejected(ctx, sectionAll, err)
	}
	s.accepted(ctx, sectionAll)
	s.persist(ctx)
	return stored, nil
}

// ReplaceAgentParameters validates and swaps the agent parameters section.
func (s *Service) ReplaceAgentParameters(ctx context.Context, ap domset.AgentParameters) (domset.AgentParameters, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.ReplaceAgentParameters(ap)
	if err != nil {
		return domset.AgentParameters{}, s.rejected(ctx, string(domset.SectionAgentParameters), err)
	}
	s.accepted(ctx, string(domset.SectionAgentParameters))
	s.persist(ctx)
	return stored, nil
}

// ReplaceResourceManagement validates and swaps the resource management section.
func (s *Service) ReplaceResourceManagement(
	ctx context.Context, rm domset.ResourceManagement,
) (domset.ResourceManagement, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.ReplaceResourceManagement(rm)
	if err != nil {
		return domset.ResourceManagement{}, s.rejected(ctx, string(domset.SectionResourceManagement), err)
	}
	s.accepted(ctx, string(domset.SectionResourceManagement))
	s.persist(ctx)
	return stored, nil
}

// ReplaceAccessPermissions validates and swaps the access permissions section.
func (s *Service) ReplaceAccessPermissions(
	ctx context.Context, perms domset.AccessPermissions,
) (domset.AccessPermissions, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.ReplaceAccessPermissions(perms)
	if err != nil {
		return domset.AccessPermissions{}, s.rejected(ctx, string(domset.SectionAccessPermissions), err)
	}
	s.accepted(ctx, string(domset.SectionAccessPermissions))
	s.persist(ctx)
	return stored, nil
}

// ReplaceSection dispatches a section replace by name. value must be the section's concrete type.
func (s *Service) ReplaceSection(ctx context.Context, section domset.Section, value any) (any, error) {
	switch section {
	case domset.SectionAgentParameters:
		ap, ok := value.(domset.AgentParameters)
		if !ok {
			return nil, sectionTypeError(section, value)
		}
		return s.ReplaceAgentParameters(ctx, ap)
	case domset.SectionResourceManagement:
		rm, ok := value.(domset.ResourceManagement)
		if !ok {
			return nil, sectionTypeError(section, value)
		}
		return s.ReplaceResourceManagement(ctx, rm)
	case domset.SectionAccessPermissions:
		perms, ok := value.(domset.AccessPermissions)
		if !ok {
			return nil, sectionTypeError(section, value)
		}
		return s.ReplaceAccessPermissions(ctx, perms)
	default:
		return nil, fmt.Errorf("settings section %q: %w", section, domain.ErrNotFound)
	}
}

// Reset restores defaults. Always succeeds.
func (s *Service) Reset(ctx context.Context) domset.SystemSettings {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored := s.store.Reset()
	metrics.SettingsResetsTotal.Inc()
	s.log(ctx).Info("Settings reset to defaults")
	s.persist(ctx)
	return stored
}

// Check validates the current document. Used by the health endpoint.
func (s *Service) Check(_ context.Context) error {
	if err := s.store.Get().Validate(); err != nil {
		return fmt.Errorf("settings self-check: %w", err)
	}
	return nil
}

// Options returns the legal enum value sets.
func (s *Service) Options() Options {
	return Options{
		AgentTypes:           enum.AgentTypes(),
		AgentSpecializations: enum.AgentSpecializations(),
		RewardStructures:     enum.RewardStructures(),
		UserRoles:            enum.UserRoles(),
	}
}

// persist saves the current document. Failures are logged and counted, never
// returned: the in-memory value has already taken effect. The save outlives a
// cancelled request. Caller holds writeMu.
func (s *Service) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.repo.Save(saveCtx, s.store.Get()); err != nil {
		metrics.SettingsPersistErrorsTotal.Inc()
		s.log(ctx).Error("Failed to persist settings snapshot", zap.Error(err))
	}
}

func (s *Service) accepted(ctx context.Context, section string) {
	metrics.SettingsWritesTotal.WithLabelValues(section, metrics.ResultOK).Inc()
	s.log(ctx).Info("Settings updated", zap.String("section", section))
}

func (s *Service) rejected(ctx context.Context, section string, err error) error {
	metrics.SettingsWritesTotal.WithLabelValues(section, metrics.ResultRejected).Inc()

	fields := []zap.Field{zap.String("section", section), zap.Error(err)}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields = append(fields, zap.String("field", ve.Field), zap.String("allowed", ve.Allowed))
	}
	s.log(ctx).Warn("Settings update rejected", fields...)
	return fmt.Errorf("replace %s settings: %w", section, err)
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logpkg.FromContextOr(ctx, s.logger)
}

func sectionTypeError(section domset.Section, value any) error {
	return fmt.Errorf("settings section %q: unexpected payload type %T", section, value)
}

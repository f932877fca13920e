// Package settings holds the system settings aggregate and its three sections.
package settings

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/field"
)

// AgentParameters are global parameters applied to every agent.
type AgentParameters struct {
	DefaultLearningRate         float64
	DefaultExplorationRate      float64
	EnabledAgentTypes           []enum.AgentType
	EnabledAgentSpecializations []enum.AgentSpecialization
	RewardStructure             enum.RewardStructure
	MaxTokensPerResponse        int
}

// ResourceManagement holds compute and storage limits and their unit costs.
type ResourceManagement struct {
	MaxComputeUsage    float64 // vCPU-hours
	MaxStorageUsage    float64 // GB
	CostPerComputeHour float64
	CostPerGBStorage   float64
}

// AccessPermissions controls who can reach the system and how.
type AccessPermissions struct {
	EnabledUserRoles []enum.UserRole
	EnableAPIAccess  bool
	APIRateLimit     int // requests/day
	EnableLogging    bool
}

// SystemSettings is the singleton settings document.
type SystemSettings struct {
	AgentParameters    AgentParameters
	ResourceManagement ResourceManagement
	AccessPermissions  AccessPermissions
}

// DefaultAgentParameters returns a fresh AgentParameters with documented defaults.
func DefaultAgentParameters() AgentParameters {
	return AgentParameters{
		DefaultLearningRate:         field.DefaultOf[float64](field.DefaultLearningRate),
		DefaultExplorationRate:      field.DefaultOf[float64](field.DefaultExplorationRate),
		EnabledAgentTypes:           field.DefaultOf[[]enum.AgentType](field.EnabledAgentTypes),
		EnabledAgentSpecializations: field.DefaultOf[[]enum.AgentSpecialization](field.EnabledAgentSpecializations),
		RewardStructure:             field.DefaultOf[enum.RewardStructure](field.RewardStructure),
		MaxTokensPerResponse:        field.DefaultOf[int](field.MaxTokensPerResponse),
	}
}

// DefaultResourceManagement returns ResourceManagement with documented defaults.
func DefaultResourceManagement() ResourceManagement {
	return ResourceManagement{
		MaxComputeUsage:    field.DefaultOf[float64](field.MaxComputeUsage),
		MaxStorageUsage:    field.DefaultOf[float64](field.MaxStorageUsage),
		CostPerComputeHour: field.DefaultOf[float64](field.CostPerComputeHour),
		CostPerGBStorage:   field.DefaultOf[float64](field.CostPerGBStorage),
	}
}

// DefaultAccessPermissions returns a fresh AccessPermissions with documented defaults.
func DefaultAccessPermissions() AccessPermissions {
	return AccessPermissions{
		EnabledUserRoles: field.DefaultOf[[]enum.UserRole](field.EnabledUserRoles),
		EnableAPIAccess:  field.DefaultOf[bool](field.EnableAPIAccess),
		APIRateLimit:     field.DefaultOf[int](field.APIRateLimit),
		EnableLogging:    field.DefaultOf[bool](field.EnableLogging),
	}
}

// Default returns the initial settings document.
func Default() SystemSettings {
	return SystemSettings{
		AgentParameters:    DefaultAgentParameters(),
		ResourceManagement: DefaultResourceManagement(),
		AccessPermissions:  DefaultAccessPermissions(),
	}
}

// New validates the three sections and composes them.
// Fails with the first violation; no partial aggregate is returned.
func New(ap AgentParameters, rm ResourceManagement, perms AccessPermissions) (SystemSettings, error) {
	s := SystemSettings{
		AgentParameters:    ap.Clone(),
		ResourceManagement: rm,
		AccessPermissions:  perms.Clone(),
	}
	if err := s.Validate(); err != nil {
		return SystemSettings{}, err
	}
	return s, nil
}

// Validate checks every field of the section.
func (p AgentParameters) Validate() error {
	return validateAll(
		check{field.DefaultLearningRate, p.DefaultLearningRate},
		check{field.DefaultExplorationRate, p.DefaultExplorationRate},
		check{field.EnabledAgentTypes, p.EnabledAgentTypes},
		check{field.EnabledAgentSpecializations, p.EnabledAgentSpecializations},
		check{field.RewardStructure, p.RewardStructure},
		check{field.MaxTokensPerResponse, p.MaxTokensPerResponse},
	)
}

// Validate checks every field of the section.
func (r ResourceManagement) Validate() error {
	return validateAll(
		check{field.MaxComputeUsage, r.MaxComputeUsage},
		check{field.MaxStorageUsage, r.MaxStorageUsage},
		check{field.CostPerComputeHour, r.CostPerComputeHour},
		check{field.CostPerGBStorage, r.CostPerGBStorage},
	)
}

// Validate checks every field of the section.
func (a AccessPermissions) Validate() error {
	return validateAll(
		check{field.EnabledUserRoles, a.EnabledUserRoles},
		check{field.EnableAPIAccess, a.EnableAPIAccess},
		check{field.APIRateLimit, a.APIRateLimit},
		check{field.EnableLogging, a.EnableLogging},
	)
}

// Validate checks all three sections.
func (s SystemSettings) Validate() error {
	if err := s.AgentParameters.Validate(); err != nil {
		return fmt.Errorf("agent parameters: %w", err)
	}
	if err := s.ResourceManagement.Validate(); err != nil {
		return fmt.Errorf("resource management: %w", err)
	}
	if err := s.AccessPermissions.Validate(); err != nil {
		return fmt.Errorf("access permissions: %w", err)
	}
	return nil
}

// Clone returns a deep copy. Enum sets are deduplicated, first occurrence wins.
func (p AgentParameters) Clone() AgentParameters {
	p.EnabledAgentTypes = enum.Dedup(p.EnabledAgentTypes)
	p.EnabledAgentSpecializations = enum.Dedup(p.EnabledAgentSpecializations)
	return p
}

// Clone returns a deep copy. Enum sets are deduplicated, first occurrence wins.
func (a AccessPermissions) Clone() AccessPermissions {
	a.EnabledUserRoles = enum.Dedup(a.EnabledUserRoles)
	return a
}

// Clone returns a deep copy of the document.
func (s SystemSettings) Clone() SystemSettings {
	return SystemSettings{
		AgentParameters:    s.AgentParameters.Clone(),
		ResourceManagement: s.ResourceManagement,
		AccessPermissions:  s.AccessPermissions.Clone(),
	}
}

// Equal reports whether two documents hold the same values.
func (s SystemSettings) Equal(o SystemSettings) bool {
	a, b := s.AgentParameters, o.AgentParameters
	return a.DefaultLearningRate == b.DefaultLearningRate &&
		a.DefaultExplorationRate == b.DefaultExplorationRate &&
		slices.Equal(a.EnabledAgentTypes, b.EnabledAgentTypes) &&
		slices.Equal(a.EnabledAgentSpecializations, b.EnabledAgentSpecializations) &&
		a.RewardStructure == b.RewardStructure &&
		a.MaxTokensPerResponse == b.MaxTokensPerResponse &&
		s.ResourceManagement == o.ResourceManagement &&
		slices.Equal(s.AccessPermissions.EnabledUserRoles, o.AccessPermissions.EnabledUserRoles) &&
		s.AccessPermissions.EnableAPIAccess == o.AccessPermissions.EnableAPIAccess &&
		s.AccessPermissions.APIRateLimit == o.AccessPermissions.APIRateLimit &&
		s.AccessPermissions.EnableLogging == o.AccessPermissions.EnableLogging
}

type check struct {
	name  string
	value any
}

func validateAll(checks ...check) error {
	for _, c := range checks {
		if _, err := field.Validate(c.name, c.value); err != nil {
			return err //nolint:wrapcheck // ValidationError already names the field
		}
	}
	return nil
}

package settings

import (
	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
)

// snapshotVersion is bumped when the stored layout changes incompatibly.
const snapshotVersion = 1

// snapshotRow is the JSON-serializable settings snapshot stored under one key.
type snapshotRow struct {
	Version            int                   `json:"v"`
	SavedAt            int64                 `json:"saved_at"` // unix millis
	AgentParameters    agentParametersRow    `json:"agent_parameters"`
	ResourceManagement resourceManagementRow `json:"resource_management"`
	AccessPermissions  accessPermissionsRow  `json:"access_permissions"`
}

type agentParametersRow struct {
	DefaultLearningRate         float64  `json:"default_learning_rate"`
	DefaultExplorationRate      float64  `json:"default_exploration_rate"`
	EnabledAgentTypes           []string `json:"enabled_agent_types"`
	EnabledAgentSpecializations []string `json:"enabled_agent_specializations"`
	RewardStructure             string   `json:"reward_structure"`
	MaxTokensPerResponse        int      `json:"max_tokens_per_response"`
}

type resourceManagementRow struct {
	MaxComputeUsage    float64 `json:"max_compute_usage"`
	MaxStorageUsage    float64 `json:"max_storage_usage"`
	CostPerComputeHour float64 `json:"cost_per_compute_hour"`
	CostPerGBStorage   float64 `json:"cost_per_gb_storage"`
}

type accessPermissionsRow struct {
	EnabledUserRoles []string `json:"enabled_user_roles"`
	EnableAPIAccess  bool     `json:"enable_api_access"`
	APIRateLimit     int      `json:"api_rate_limit"`
	EnableLogging    bool     `json:"enable_logging"`
}

// snapshotFromDomain converts the domain document to its stored form.
func snapshotFromDomain(s domset.SystemSettings, savedAt int64) snapshotRow {
	ap, rm, perms := s.AgentParameters, s.ResourceManagement, s.AccessPermissions
	return snapshotRow{
		Version: snapshotVersion,
		SavedAt: savedAt,
		AgentParameters: agentParametersRow{
			DefaultLearningRate:         ap.DefaultLearningRate,
			DefaultExplorationRate:      ap.DefaultExplorationRate,
			EnabledAgentTypes:           toStrings(ap.EnabledAgentTypes),
			EnabledAgentSpecializations: toStrings(ap.EnabledAgentSpecializations),
			RewardStructure:             string(ap.RewardStructure),
			MaxTokensPerResponse:        ap.MaxTokensPerResponse,
		},
		ResourceManagement: resourceManagementRow{
			MaxComputeUsage:    rm.MaxComputeUsage,
			MaxStorageUsage:    rm.MaxStorageUsage,
			CostPerComputeHour: rm.CostPerComputeHour,
			CostPerGBStorage:   rm.CostPerGBStorage,
		},
		AccessPermissions: accessPermissionsRow{
			EnabledUserRoles: toStrings(perms.EnabledUserRoles),
			EnableAPIAccess:  perms.EnableAPIAccess,
			APIRateLimit:     perms.APIRateLimit,
			EnableLogging:    perms.EnableLogging,
		},
	}
}

// toDomain hydrates the stored form without validation; the service validates on restore.
func (r snapshotRow) toDomain() domset.SystemSettings {
	ap, rm, perms := r.AgentParameters, r.ResourceManagement, r.AccessPermissions
	return domset.SystemSettings{
		AgentParameters: domset.AgentParameters{
			DefaultLearningRate:         ap.DefaultLearningRate,
			DefaultExplorationRate:      ap.DefaultExplorationRate,
			EnabledAgentTypes:           fromStrings[enum.AgentType](ap.EnabledAgentTypes),
			EnabledAgentSpecializations: fromStrings[enum.AgentSpecialization](ap.EnabledAgentSpecializations),
			RewardStructure:             enum.RewardStructure(ap.RewardStructure),
			MaxTokensPerResponse:        ap.MaxTokensPerResponse,
		},
		ResourceManagement: domset.ResourceManagement{
			MaxComputeUsage:    rm.MaxComputeUsage,
			MaxStorageUsage:    rm.MaxStorageUsage,
			CostPerComputeHour: rm.CostPerComputeHour,
			CostPerGBStorage:   rm.CostPerGBStorage,
		},
		AccessPermissions: domset.AccessPermissions{
			EnabledUserRoles: fromStrings[enum.UserRole](perms.EnabledUserRoles),
			EnableAPIAccess:  perms.EnableAPIAccess,
			APIRateLimit:     perms.APIRateLimit,
			EnableLogging:    perms.EnableLogging,
		},
	}
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func fromStrings[T ~string](in []string) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

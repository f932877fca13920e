package agentdesk

// Section names, as used in URL paths.
const (
	SectionAgentParameters    = "agent-parameters"
	SectionResourceManagement = "resource-management"
	SectionAccessPermissions  = "access-permissions"
)

// Settings is the full settings document.
type Settings struct {
	AgentParameters    AgentParameters    `json:"agent_parameters" yaml:"agent_parameters"`
	ResourceManagement ResourceManagement `json:"resource_management" yaml:"resource_management"`
	AccessPermissions  AccessPermissions  `json:"access_permissions" yaml:"access_permissions"`
}

// AgentParameters controls default agent behavior.
type AgentParameters struct {
	DefaultLearningRate         float64  `json:"default_learning_rate" yaml:"default_learning_rate"`
	DefaultExplorationRate      float64  `json:"default_exploration_rate" yaml:"default_exploration_rate"`
	EnabledAgentTypes           []string `json:"enabled_agent_types" yaml:"enabled_agent_types"`
	EnabledAgentSpecializations []string `json:"enabled_agent_specializations" yaml:"enabled_agent_specializations"`
	RewardStructure             string   `json:"reward_structure" yaml:"reward_structure"`
	MaxTokensPerResponse        int      `json:"max_tokens_per_response" yaml:"max_tokens_per_response"`
}

// ResourceManagement holds compute and storage limits and prices.
type ResourceManagement struct {
	MaxComputeUsage    float64 `json:"max_compute_usage" yaml:"max_compute_usage"`
	MaxStorageUsage    float64 `json:"max_storage_usage" yaml:"max_storage_usage"`
	CostPerComputeHour float64 `json:"cost_per_compute_hour" yaml:"cost_per_compute_hour"`
	CostPerGBStorage   float64 `json:"cost_per_gb_storage" yaml:"cost_per_gb_storage"`
}

// AccessPermissions controls roles and API access.
type AccessPermissions struct {
	EnabledUserRoles []string `json:"enabled_user_roles" yaml:"enabled_user_roles"`
	EnableAPIAccess  bool     `json:"enable_api_access" yaml:"enable_api_access"`
	APIRateLimit     int      `json:"api_rate_limit" yaml:"api_rate_limit"`
	EnableLogging    bool     `json:"enable_logging" yaml:"enable_logging"`
}

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

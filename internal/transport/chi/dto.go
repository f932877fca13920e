package chi

import (
	"github.com/kailas-cloud/agentdesk/internal/domain"
	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/enum"
	"github.com/kailas-cloud/agentdesk/internal/domain/settings/field"
)

// ErrorResponseCode is the machine-readable error code in ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	CodeBadRequest       ErrorResponseCode = "bad_request"
	CodeValidationFailed ErrorResponseCode = "validation_failed"
	CodeNotFound         ErrorResponseCode = "not_found"
	CodeUnauthorized     ErrorResponseCode = "unauthorized"
	CodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Value   any               `json:"value,omitempty"`
	Allowed string            `json:"allowed,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- Responses ---

type agentParametersResponse struct {
	DefaultLearningRate         float64  `json:"default_learning_rate"`
	DefaultExplorationRate      float64  `json:"default_exploration_rate"`
	EnabledAgentTypes           []string `json:"enabled_agent_types"`
	EnabledAgentSpecializations []string `json:"enabled_agent_specializations"`
	RewardStructure             string   `json:"reward_structure"`
	MaxTokensPerResponse        int      `json:"max_tokens_per_response"`
}

type resourceManagementResponse struct {
	MaxComputeUsage    float64 `json:"max_compute_usage"`
	MaxStorageUsage    float64 `json:"max_storage_usage"`
	CostPerComputeHour float64 `json:"cost_per_compute_hour"`
	CostPerGBStorage   float64 `json:"cost_per_gb_storage"`
}

type accessPermissionsResponse struct {
	EnabledUserRoles []string `json:"enabled_user_roles"`
	EnableAPIAccess  bool     `json:"enable_api_access"`
	APIRateLimit     int      `json:"api_rate_limit"`
	EnableLogging    bool     `json:"enable_logging"`
}

type settingsResponse struct {
	AgentParameters    agentParametersResponse    `json:"agent_parameters"`
	ResourceManagement resourceManagementResponse `json:"resource_management"`
	AccessPermissions  accessPermissionsResponse  `json:"access_permissions"`
}

func agentParametersToResponse(ap domset.AgentParameters) agentParametersResponse {
	return agentParametersResponse{
		DefaultLearningRate:         ap.DefaultLearningRate,
		DefaultExplorationRate:      ap.DefaultExplorationRate,
		EnabledAgentTypes:           toStrings(ap.EnabledAgentTypes),
		EnabledAgentSpecializations: toStrings(ap.EnabledAgentSpecializations),
		RewardStructure:             string(ap.RewardStructure),
		MaxTokensPerResponse:        ap.MaxTokensPerResponse,
	}
}

func resourceManagementToResponse(rm domset.ResourceManagement) resourceManagementResponse {
	return resourceManagementResponse{
		MaxComputeUsage:    rm.MaxComputeUsage,
		MaxStorageUsage:    rm.MaxStorageUsage,
		CostPerComputeHour: rm.CostPerComputeHour,
		CostPerGBStorage:   rm.CostPerGBStorage,
	}
}

func accessPermissionsToResponse(p domset.AccessPermissions) accessPermissionsResponse {
	return accessPermissionsResponse{
		EnabledUserRoles: toStrings(p.EnabledUserRoles),
		EnableAPIAccess:  p.EnableAPIAccess,
		APIRateLimit:     p.APIRateLimit,
		EnableLogging:    p.EnableLogging,
	}
}

func settingsToResponse(s domset.SystemSettings) settingsResponse {
	return settingsResponse{
		AgentParameters:    agentParametersToResponse(s.AgentParameters),
		ResourceManagement: resourceManagementToResponse(s.ResourceManagement),
		AccessPermissions:  accessPermissionsToResponse(s.AccessPermissions),
	}
}

// sectionToResponse maps a section value returned by the service to its wire form.
func sectionToResponse(v any) (any, bool) {
	switch s := v.(type) {
	case domset.AgentParameters:
		return agentParametersToResponse(s), true
	case domset.ResourceManagement:
		return resourceManagementToResponse(s), true
	case domset.AccessPermissions:
		return accessPermissionsToResponse(s), true
	default:
		return nil, false
	}
}

// --- Requests ---
// Pointer fields tell a missing field apart from a zero value.

type agentParametersRequest struct {
	DefaultLearningRate         *float64  `json:"default_learning_rate"`
	DefaultExplorationRate      *float64  `json:"default_exploration_rate"`
	EnabledAgentTypes           *[]string `json:"enabled_agent_types"`
	EnabledAgentSpecializations *[]string `json:"enabled_agent_specializations"`
	RewardStructure             *string   `json:"reward_structure"`
	MaxTokensPerResponse        *int      `json:"max_tokens_per_response"`
}

type resourceManagementRequest struct {
	MaxComputeUsage    *float64 `json:"max_compute_usage"`
	MaxStorageUsage    *float64 `json:"max_storage_usage"`
	CostPerComputeHour *float64 `json:"cost_per_compute_hour"`
	CostPerGBStorage   *float64 `json:"cost_per_gb_storage"`
}

type accessPermissionsRequest struct {
	EnabledUserRoles *[]string `json:"enabled_user_roles"`
	EnableAPIAccess  *bool     `json:"enable_api_access"`
	APIRateLimit     *int      `json:"api_rate_limit"`
	EnableLogging    *bool     `json:"enable_logging"`
}

type settingsRequest struct {
	AgentParameters    *agentParametersRequest    `json:"agent_parameters"`
	ResourceManagement *resourceManagementRequest `json:"resource_management"`
	AccessPermissions  *accessPermissionsRequest  `json:"access_permissions"`
}

// Wire names of the top-level sections.
const (
	keyAgentParameters    = "agent_parameters"
	keyResourceManagement = "resource_management"
	keyAccessPermissions  = "access_permissions"
)

// filler resolves absent request fields. In strict mode the first absent field
// is reported as a validation error; otherwise absent fields take their default.
type filler struct {
	strict  bool
	missing string
}

func take[T any](f *filler, name string, p *T, def T) T {
	if p != nil {
		return *p
	}
	if f.strict && f.missing == "" {
		f.missing = name
	}
	return def
}

func (f *filler) err() error {
	if f.missing == "" {
		return nil
	}
	return domain.NewValidationError(f.missing, nil, "required")
}

func (r agentParametersRequest) toDomain(f *filler) domset.AgentParameters {
	def := domset.DefaultAgentParameters()
	return domset.AgentParameters{
		DefaultLearningRate:    take(f, field.DefaultLearningRate, r.DefaultLearningRate, def.DefaultLearningRate),
		DefaultExplorationRate: take(f, field.DefaultExplorationRate, r.DefaultExplorationRate, def.DefaultExplorationRate),
		EnabledAgentTypes: fromStrings[enum.AgentType](
			take(f, field.EnabledAgentTypes, r.EnabledAgentTypes, toStrings(def.EnabledAgentTypes))),
		EnabledAgentSpecializations: fromStrings[enum.AgentSpecialization](
			take(f, field.EnabledAgentSpecializations, r.EnabledAgentSpecializations,
				toStrings(def.EnabledAgentSpecializations))),
		RewardStructure: enum.RewardStructure(
			take(f, field.RewardStructure, r.RewardStructure, string(def.RewardStructure))),
		MaxTokensPerResponse: take(f, field.MaxTokensPerResponse, r.MaxTokensPerResponse, def.MaxTokensPerResponse),
	}
}

func (r resourceManagementRequest) toDomain(f *filler) domset.ResourceManagement {
	def := domset.DefaultResourceManagement()
	return domset.ResourceManagement{
		MaxComputeUsage:    take(f, field.MaxComputeUsage, r.MaxComputeUsage, def.MaxComputeUsage),
		MaxStorageUsage:    take(f, field.MaxStorageUsage, r.MaxStorageUsage, def.MaxStorageUsage),
		CostPerComputeHour: take(f, field.CostPerComputeHour, r.CostPerComputeHour, def.CostPerComputeHour),
		CostPerGBStorage:   take(f, field.CostPerGBStorage, r.CostPerGBStorage, def.CostPerGBStorage),
	}
}

func (r accessPermissionsRequest) toDomain(f *filler) domset.AccessPermissions {
	def := domset.DefaultAccessPermissions()
	return domset.AccessPermissions{
		EnabledUserRoles: fromStrings[enum.UserRole](
			take(f, field.EnabledUserRoles, r.EnabledUserRoles, toStrings(def.EnabledUserRoles))),
		EnableAPIAccess: take(f, field.EnableAPIAccess, r.EnableAPIAccess, def.EnableAPIAccess),
		APIRateLimit:    take(f, field.APIRateLimit, r.APIRateLimit, def.APIRateLimit),
		EnableLogging:   take(f, field.EnableLogging, r.EnableLogging, def.EnableLogging),
	}
}

// toDomain requires all three sections; fields missing inside a section take defaults.
func (r settingsRequest) toDomain() (domset.SystemSettings, error) {
	switch {
	case r.AgentParameters == nil:
		return domset.SystemSettings{}, domain.NewValidationError(keyAgentParameters, nil, "required")
	case r.ResourceManagement == nil:
		return domset.SystemSettings{}, domain.NewValidationError(keyResourceManagement, nil, "required")
	case r.AccessPermissions == nil:
		return domset.SystemSettings{}, domain.NewValidationError(keyAccessPermissions, nil, "required")
	}

	f := &filler{}
	return domset.SystemSettings{
		AgentParameters:    r.AgentParameters.toDomain(f),
		ResourceManagement: r.ResourceManagement.toDomain(f),
		AccessPermissions:  r.AccessPermissions.toDomain(f),
	}, nil
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

package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/agentdesk/internal/domain"
	domset "github.com/kailas-cloud/agentdesk/internal/domain/settings"
	logpkg "github.com/kailas-cloud/agentdesk/internal/logger"
	healthuc "github.com/kailas-cloud/agentdesk/internal/usecase/health"
	settingsuc "github.com/kailas-cloud/agentdesk/internal/usecase/settings"
	"github.com/kailas-cloud/agentdesk/internal/version"
)

// maxBodyBytes caps request bodies; a settings document is a few hundred bytes.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the settings API.
type Server struct {
	settings      *settingsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(settings *settingsuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		settings: settings,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
	return s
}

// Routes registers the API on r. Static option routes win over /settings/{section}.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Get("/settings", s.GetSettings)
	r.Put("/settings", s.ReplaceSettings)
	r.Post("/settings/reset", s.ResetSettings)

	r.Get("/settings/agent-types", s.ListAgentTypes)
	r.Get("/settings/agent-specializations", s.ListAgentSpecializations)
	r.Get("/settings/reward-structures", s.ListRewardStructures)
	r.Get("/settings/user-roles", s.ListUserRoles)

	r.Get("/settings/{section}", s.GetSection)
	r.Put("/settings/{section}", s.ReplaceSection)
}

// fixedSettingsRoutes maps each static /settings/* segment to the one method it serves.
// chi falls back to /settings/{section} for any other method on these paths.
var fixedSettingsRoutes = map[string]string{
	"reset":                 http.MethodPost,
	"agent-types":           http.MethodGet,
	"agent-specializations": http.MethodGet,
	"reward-structures":     http.MethodGet,
	"user-roles":            http.MethodGet,
}

// rejectFixedRoute writes 405 when name is a static segment reached with the wrong method.
func rejectFixedRoute(w http.ResponseWriter, name string) bool {
	allow, ok := fixedSettingsRoutes[name]
	if !ok {
		return false
	}
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	return true
}

// GetSettings handles GET /settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsToResponse(s.settings.Get(r.Context())))
}

// ReplaceSettings handles PUT /settings.
func (s *Server) ReplaceSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	next, err := req.toDomain()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	stored, err := s.settings.Replace(r.Context(), next)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsToResponse(stored))
}

// GetSection handles GET /settings/{section}.
func (s *Server) GetSection(w http.ResponseWriter, r *http.Request) {
	name := chirouter.URLParam(r, "section")
	if rejectFixedRoute(w, name) {
		return
	}
	section, err := domset.ParseSection(name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	v, err := s.settings.Section(r.Context(), section)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeSection(w, r, v)
}

// ReplaceSection handles PUT /settings/{section}. Every field of the section is required.
func (s *Server) ReplaceSection(w http.ResponseWriter, r *http.Request) {
	name := chirouter.URLParam(r, "section")
	if rejectFixedRoute(w, name) {
		return
	}
	section, err := domset.ParseSection(name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	f := &filler{strict: true}
	var value any
	switch section {
	case domset.SectionAgentParameters:
		var req agentParametersRequest
		if !decodeBody(w, r, &req) {
			return
		}
		value = req.toDomain(f)
	case domset.SectionResourceManagement:
		var req resourceManagementRequest
		if !decodeBody(w, r, &req) {
			return
		}
		value = req.toDomain(f)
	case domset.SectionAccessPermissions:
		var req accessPermissionsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		value = req.toDomain(f)
	}
	if err := f.err(); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	stored, err := s.settings.ReplaceSection(r.Context(), section, value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeSection(w, r, stored)
}

// ResetSettings handles POST /settings/reset.
func (s *Server) ResetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsToResponse(s.settings.Reset(r.Context())))
}

// ListAgentTypes handles GET /settings/agent-types.
func (s *Server) ListAgentTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStrings(s.settings.Options().AgentTypes))
}

// ListAgentSpecializations handles GET /settings/agent-specializations.
func (s *Server) ListAgentSpecializations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStrings(s.settings.Options().AgentSpecializations))
}

// ListRewardStructures handles GET /settings/reward-structures.
func (s *Server) ListRewardStructures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStrings(s.settings.Options().RewardStructures))
}

// ListUserRoles handles GET /settings/user-roles.
func (s *Server) ListUserRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStrings(s.settings.Options().UserRoles))
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "agentdesk",
		"version": version.Version,
		"commit":  version.Commit,
		"docs":    "/settings",
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) writeSection(w http.ResponseWriter, r *http.Request, v any) {
	resp, ok := sectionToResponse(v)
	if !ok {
		s.handleDomainError(w, r, fmt.Errorf("unexpected section type %T", v))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeBody decodes a JSON body into dst. Unknown fields are ignored.
// On failure it writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrValidation, domain.ErrNotFound} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the offending field, its value and the permitted domain.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationFailed,
			Message: ve.Error(),
			Field:   ve.Field,
			Value:   ve.Value,
			Allowed: ve.Allowed,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

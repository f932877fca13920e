package agentdesk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chiTransport "github.com/kailas-cloud/agentdesk/internal/transport/chi"
	healthuc "github.com/kailas-cloud/agentdesk/internal/usecase/health"
	settingsuc "github.com/kailas-cloud/agentdesk/internal/usecase/settings"
)

// newTestServer runs the real API in-process.
func newTestServer(t *testing.T, apiKeys ...string) *httptest.Server {
	t.Helper()
	svc := settingsuc.New(settingsuc.NewStore(), nil, nil)
	server := chiTransport.NewServer(svc, healthuc.New(svc, nil), nil)
	ts := httptest.NewServer(chiTransport.NewRouter(server, apiKeys, nil))
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithRetryWait(time.Millisecond, 5*time.Millisecond)}, opts...)
	c, err := New(url, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8080", "://nope"} {
		_, err := New(u)
		assert.Error(t, err, "base URL %q", u)
	}
}

func TestClient_GetDefaults(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	s, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 512, s.AgentParameters.MaxTokensPerResponse)
	assert.Equal(t, []string{"Conversational", "Retrieval-based"}, s.AgentParameters.EnabledAgentTypes)
	assert.Equal(t, ResourceManagement{
		MaxComputeUsage: 10000, MaxStorageUsage: 1000, CostPerComputeHour: 0.05, CostPerGBStorage: 0.02,
	}, s.ResourceManagement)
	assert.Equal(t, 1000, s.AccessPermissions.APIRateLimit)
}

func TestClient_ReplaceSectionRoundTrip(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	want := AgentParameters{
		DefaultLearningRate:         0.5,
		DefaultExplorationRate:      0.2,
		EnabledAgentTypes:           []string{"Generative"},
		EnabledAgentSpecializations: []string{"HR"},
		RewardStructure:             "Variable",
		MaxTokensPerResponse:        256,
	}
	got, err := c.ReplaceAgentParameters(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = c.AgentParameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	rm, err := c.ResourceManagement(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 10000, rm.MaxComputeUsage, 0)
}

func TestClient_ValidationError(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	perms, err := c.AccessPermissions(ctx)
	require.NoError(t, err)
	perms.APIRateLimit = -5

	_, err = c.ReplaceAccessPermissions(ctx, perms)
	require.ErrorIs(t, err, ErrValidation)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "api_rate_limit", apiErr.Field)
	assert.Equal(t, ">= 0", apiErr.Allowed)

	after, err := c.AccessPermissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000, after.APIRateLimit)
}

func TestClient_ReplaceAndReset(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	defaults, err := c.Get(ctx)
	require.NoError(t, err)

	next := defaults
	next.ResourceManagement.MaxComputeUsage = 42
	next.AccessPermissions.EnabledUserRoles = []string{"Viewer"}
	stored, err := c.Replace(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, next, stored)

	reset, err := c.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaults, reset)
}

func TestClient_Options(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)
	ctx := context.Background()

	types, err := c.AgentTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4)

	specs, err := c.AgentSpecializations(ctx)
	require.NoError(t, err)
	assert.Contains(t, specs, "Data Analysis")

	rewards, err := c.RewardStructures(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fixed", "Variable", "Performance-based"}, rewards)

	roles, err := c.UserRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Administrator", "Developer", "Analyst", "Viewer"}, roles)
}

func TestClient_Health(t *testing.T) {
	c := newTestClient(t, newTestServer(t).URL)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "ok", h.Checks["settings"])
}

func TestClient_Auth(t *testing.T) {
	ts := newTestServer(t, "secret")

	_, err := newTestClient(t, ts.URL).Get(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = newTestClient(t, ts.URL, WithAPIKey("secret")).Get(context.Background())
	require.NoError(t, err)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"code":"internal_error","message":"try again"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Fixed"]`))
	}))
	defer ts.Close()

	got, err := newTestClient(t, ts.URL, WithRetries(3)).RewardStructures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fixed"}, got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"not found"}`))
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, WithRetries(3)).AgentParameters(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_ServerErrorAfterRetries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, WithRetries(1)).Get(context.Background())
	require.ErrorIs(t, err, ErrServer)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "http_error", apiErr.Code)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, newTestServer(t).URL, WithPrometheus(reg))

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	_, err = c.ReplaceAccessPermissions(context.Background(), AccessPermissions{APIRateLimit: -1})
	require.Error(t, err)

	// A second client on the same registry reuses the collectors.
	_, err = New("http://localhost:1", WithPrometheus(reg))
	require.NoError(t, err)

	m, err := newSDKMetrics(reg)
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("get", "ok")), 0)
	assert.InDelta(t, 1,
		testutil.ToFloat64(m.operations.WithLabelValues("replace_access-permissions", "error")), 0)
}

func TestAPIError_Unwrap(t *testing.T) {
	cases := []struct {
		err  *APIError
		want error
	}{
		{&APIError{Status: 400, Code: "validation_failed"}, ErrValidation},
		{&APIError{Status: 404, Code: "not_found"}, ErrNotFound},
		{&APIError{Status: 401, Code: "unauthorized"}, ErrUnauthorized},
		{&APIError{Status: 500, Code: "internal_error"}, ErrServer},
	}
	for _, tc := range cases {
		assert.True(t, errors.Is(tc.err, tc.want), "%v should match %v", tc.err, tc.want)
	}
	assert.Nil(t, (&APIError{Status: 400, Code: "bad_request"}).Unwrap())
}

package agentdesk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the agentdesk SDK entry point. It is safe for concurrent use.
type Client struct {
	http *resty.Client
	obs  *observer
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("agentdesk: invalid base URL %q", baseURL)
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{http: buildHTTPClient(cfg, strings.TrimRight(baseURL, "/")), obs: obs}, nil
}

func buildHTTPClient(cfg *clientConfig, baseURL string) *resty.Client {
	var client *resty.Client
	if cfg.httpClient != nil {
		client = resty.NewWithClient(cfg.httpClient)
	} else {
		client = resty.New()
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.userAgent).
		SetRetryCount(cfg.retries).
		SetRetryWaitTime(cfg.retryWait).
		SetRetryMaxWaitTime(cfg.retryMaxWait).
		AddRetryCondition(retryCondition)

	if cfg.apiKey != "" {
		client.SetAuthToken(cfg.apiKey)
	}
	return client
}

// retryCondition retries network errors and 5xx responses.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

// do performs one API call. body and result may be nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, result any) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("agentdesk: %s %s: %w", method, path, err)
	}
	return handleResponse(resp)
}

// handleResponse turns a non-2xx response into *APIError.
func handleResponse(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	if apiErr, ok := resp.Error().(*APIError); ok && apiErr != nil && apiErr.Code != "" {
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return &APIError{
		Status:  resp.StatusCode(),
		Code:    "http_error",
		Message: strings.TrimSpace(resp.String()),
	}
}

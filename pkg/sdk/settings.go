package agentdesk

import (
	"context"
	"fmt"
	"net/http"
)

// Get returns the full settings document.
func (c *Client) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := c.do(ctx, "get", http.MethodGet, "/settings", nil, &s)
	return s, err
}

// Replace validates and replaces the full document on the server.
func (c *Client) Replace(ctx context.Context, s Settings) (Settings, error) {
	var out Settings
	err := c.do(ctx, "replace", http.MethodPut, "/settings", s, &out)
	return out, err
}

// Reset restores the server defaults and returns them.
func (c *Client) Reset(ctx context.Context) (Settings, error) {
	var out Settings
	err := c.do(ctx, "reset", http.MethodPost, "/settings/reset", nil, &out)
	return out, err
}

// AgentParameters returns the agent parameters section.
func (c *Client) AgentParameters(ctx context.Context) (AgentParameters, error) {
	var out AgentParameters
	err := c.getSection(ctx, SectionAgentParameters, &out)
	return out, err
}

// ReplaceAgentParameters replaces the agent parameters section.
func (c *Client) ReplaceAgentParameters(ctx context.Context, ap AgentParameters) (AgentParameters, error) {
	var out AgentParameters
	err := c.replaceSection(ctx, SectionAgentParameters, ap, &out)
	return out, err
}

// ResourceManagement returns the resource management section.
func (c *Client) ResourceManagement(ctx context.Context) (ResourceManagement, error) {
	var out ResourceManagement
	err := c.getSection(ctx, SectionResourceManagement, &out)
	return out, err
}

// ReplaceResourceManagement replaces the resource management section.
func (c *Client) ReplaceResourceManagement(ctx context.Context, rm ResourceManagement) (ResourceManagement, error) {
	var out ResourceManagement
	err := c.replaceSection(ctx, SectionResourceManagement, rm, &out)
	return out, err
}

// AccessPermissions returns the access permissions section.
func (c *Client) AccessPermissions(ctx context.Context) (AccessPermissions, error) {
	var out AccessPermissions
	err := c.getSection(ctx, SectionAccessPermissions, &out)
	return out, err
}

// ReplaceAccessPermissions replaces the access permissions section.
func (c *Client) ReplaceAccessPermissions(ctx context.Context, p AccessPermissions) (AccessPermissions, error) {
	var out AccessPermissions
	err := c.replaceSection(ctx, SectionAccessPermissions, p, &out)
	return out, err
}

// AgentTypes lists the legal agent types.
func (c *Client) AgentTypes(ctx context.Context) ([]string, error) {
	return c.options(ctx, "agent-types")
}

// AgentSpecializations lists the legal agent specializations.
func (c *Client) AgentSpecializations(ctx context.Context) ([]string, error) {
	return c.options(ctx, "agent-specializations")
}

// RewardStructures lists the legal reward structures.
func (c *Client) RewardStructures(ctx context.Context) ([]string, error) {
	return c.options(ctx, "reward-structures")
}

// UserRoles lists the legal user roles.
func (c *Client) UserRoles(ctx context.Context) ([]string, error) {
	return c.options(ctx, "user-roles")
}

// Health returns the server health report. A 503 is returned as an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	err := c.do(ctx, "health", http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) getSection(ctx context.Context, section string, out any) error {
	return c.do(ctx, "get_"+section, http.MethodGet, "/settings/"+section, nil, out)
}

func (c *Client) replaceSection(ctx context.Context, section string, in, out any) error {
	return c.do(ctx, "replace_"+section, http.MethodPut, "/settings/"+section, in, out)
}

func (c *Client) options(ctx context.Context, set string) ([]string, error) {
	var out []string
	if err := c.do(ctx, "options_"+set, http.MethodGet, "/settings/"+set, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", set, err)
	}
	return out, nil
}

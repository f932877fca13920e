// Package cli implements agentdeskctl, a command-line client for the settings API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	agentdesk "github.com/kailas-cloud/agentdesk/pkg/sdk"
)

// Environment variables read for flag defaults.
const (
	EnvServer = "AGENTDESK_SERVER"
	EnvAPIKey = "AGENTDESK_API_KEY"
)

const defaultServer = "http://localhost:8080"

// Output formats.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootOptions struct {
	server  string
	apiKey  string
	timeout time.Duration
	output  string
}

// NewRootCmd builds the agentdeskctl command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "agentdeskctl",
		Short: "Manage agentdesk system settings",
		Long: `agentdeskctl reads and changes the settings of an agentdesk server.

Examples:
  agentdeskctl get
  agentdeskctl get agent-parameters -o yaml
  agentdeskctl set access-permissions -f perms.yaml
  agentdeskctl reset
  agentdeskctl options user-roles`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("--output must be %q or %q, got %q", outputJSON, outputYAML, opts.output)
			}
			return nil
		},
	}

	server := os.Getenv(EnvServer)
	if server == "" {
		server = defaultServer
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", server, "API base URL (env "+EnvServer+")")
	flags.StringVar(&opts.apiKey, "api-key", os.Getenv(EnvAPIKey), "Bearer API key (env "+EnvAPIKey+")")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "Output format: json or yaml")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newResetCmd(opts),
		newOptionsCmd(opts),
	)
	return root
}

func (o *rootOptions) client() (*agentdesk.Client, error) {
	c, err := agentdesk.New(o.server,
		agentdesk.WithAPIKey(o.apiKey),
		agentdesk.WithTimeout(o.timeout),
		agentdesk.WithUserAgent("agentdeskctl"),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// print writes v to w in the selected format.
func (o *rootOptions) print(w io.Writer, v any) error {
	if o.output == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

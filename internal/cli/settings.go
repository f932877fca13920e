package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	agentdesk "github.com/kailas-cloud/agentdesk/pkg/sdk"
)

const sectionAll = "all"

var sectionNames = []string{
	agentdesk.SectionAgentParameters,
	agentdesk.SectionResourceManagement,
	agentdesk.SectionAccessPermissions,
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "get [section]",
		Short:     "Print the settings document or one section",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: sectionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			section := sectionAll
			if len(args) == 1 {
				section = args[0]
			}

			var v any
			switch section {
			case sectionAll:
				v, err = c.Get(ctx)
			case agentdesk.SectionAgentParameters:
				v, err = c.AgentParameters(ctx)
			case agentdesk.SectionResourceManagement:
				v, err = c.ResourceManagement(ctx)
			case agentdesk.SectionAccessPermissions:
				v, err = c.AccessPermissions(ctx)
			}
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), v)
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <section|all> -f <file>",
		Short: "Replace a section or the whole document from a YAML or JSON file",
		Long: `Reads the current value, overlays the file on it and writes the result.
Fields absent from the file keep their current value. Use -f - to read stdin.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: append([]string{sectionAll}, sectionNames...),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var v any
			switch args[0] {
			case sectionAll:
				v, err = overlay(data, func() (agentdesk.Settings, error) { return c.Get(ctx) },
					func(s agentdesk.Settings) (agentdesk.Settings, error) {
						return c.Replace(ctx, s)
					})
			case agentdesk.SectionAgentParameters:
				v, err = overlay(data, func() (agentdesk.AgentParameters, error) { return c.AgentParameters(ctx) },
					func(ap agentdesk.AgentParameters) (agentdesk.AgentParameters, error) {
						return c.ReplaceAgentParameters(ctx, ap)
					})
			case agentdesk.SectionResourceManagement:
				v, err = overlay(data, func() (agentdesk.ResourceManagement, error) { return c.ResourceManagement(ctx) },
					func(rm agentdesk.ResourceManagement) (agentdesk.ResourceManagement, error) {
						return c.ReplaceResourceManagement(ctx, rm)
					})
			case agentdesk.SectionAccessPermissions:
				v, err = overlay(data, func() (agentdesk.AccessPermissions, error) { return c.AccessPermissions(ctx) },
					func(p agentdesk.AccessPermissions) (agentdesk.AccessPermissions, error) {
						return c.ReplaceAccessPermissions(ctx, p)
					})
			}
			if err != nil {
				return describe(err)
			}
			return opts.print(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore all settings to their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			s, err := c.Reset(cmd.Context())
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), s)
		},
	}
}

func newOptionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "options <agent-types|agent-specializations|reward-structures|user-roles>",
		Short:     "List the legal values of an enumerated field",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"agent-types", "agent-specializations", "reward-structures", "user-roles"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var values []string
			switch args[0] {
			case "agent-types":
				values, err = c.AgentTypes(ctx)
			case "agent-specializations":
				values, err = c.AgentSpecializations(ctx)
			case "reward-structures":
				values, err = c.RewardStructures(ctx)
			case "user-roles":
				values, err = c.UserRoles(ctx)
			}
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), values)
		},
	}
}

// overlay fetches the current value, decodes data over it and writes it back.
// yaml.v3 leaves fields absent from data untouched.
func overlay[T any](data []byte, get func() (T, error), put func(T) (T, error)) (T, error) {
	cur, err := get()
	if err != nil {
		return cur, err
	}
	if err := yaml.Unmarshal(data, &cur); err != nil {
		return cur, fmt.Errorf("parse input: %w", err)
	}
	return put(cur)
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file) //nolint:gosec // path supplied by the operator
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("read input: empty document")
	}
	return data, nil
}

// describe adds the rejected field to validation errors.
func describe(err error) error {
	var apiErr *agentdesk.APIError
	if errors.As(err, &apiErr) && errors.Is(err, agentdesk.ErrValidation) && apiErr.Field != "" {
		return fmt.Errorf("rejected: %s=%v is not allowed (want %s): %w", apiErr.Field, apiErr.Value, apiErr.Allowed, err)
	}
	return err
}

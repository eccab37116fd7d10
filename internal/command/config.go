package command

import (
	"encoding/json"
	"fmt"

	"github.com/marqueehq/marquee/internal/api"
	"github.com/marqueehq/marquee/internal/core"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command tree.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := core.ReadGlobalConfig()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			jsonMode, _ := cmd.Flags().GetBool("json")
			if jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(config)
			}
			baseURL, err := config.ResolveBaseURL()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "environment: %s\n", config.Environment)
			fmt.Fprintf(cmd.OutOrStdout(), "base url:    %s\n", baseURL)
			return nil
		},
	}

	cmd.AddCommand(newConfigEnvCmd(), newConfigURLCmd())
	return cmd
}

func newConfigEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env [name]",
		Short: "Show or switch the backend environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := core.ReadGlobalConfig()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(config.Environment))
				return nil
			}

			selected := core.Environment(args[0])
			valid := false
			for _, env := range core.KnownEnvironments() {
				if env == selected {
					valid = true
					break
				}
			}
			if !valid {
				return writeCommandError(cmd, fmt.Errorf("unknown environment: %s", args[0]))
			}

			config.Environment = selected
			if err := core.WriteGlobalConfig(config); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Environment set to %s\n", selected)
			return nil
		},
	}
}

func newConfigURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url [base-url]",
		Short: "Show or override the backend base URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := core.ReadGlobalConfig()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			clear, _ := cmd.Flags().GetBool("clear")
			if len(args) == 0 && !clear {
				baseURL, err := config.ResolveBaseURL()
				if err != nil {
					return writeCommandError(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), baseURL)
				return nil
			}

			if clear {
				config.BaseURL = ""
			} else {
				normalized, err := api.NormalizeBaseURL(args[0])
				if err != nil {
					return writeCommandError(cmd, err)
				}
				config.BaseURL = normalized
			}
			if err := core.WriteGlobalConfig(config); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Base URL updated")
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "remove the override and use the environment URL")
	return cmd
}

package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the events backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			ok := ctx.Session.Login(cmd.Context(), email, password)
			if !ok {
				return writeCommandError(cmd, fmt.Errorf("login failed"))
			}

			if ctx.JSONMode {
				user := ctx.Session.User()
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"logged_in": true,
					"user":      user,
				})
			}

			if user := ctx.Session.User(); user != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.UserName)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			}
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewRegisterCmd creates the register command.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new account. Registration does not log you in; run login afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			password, _ := cmd.Flags().GetString("password")

			ok := ctx.Session.Register(cmd.Context(), email, name, password)
			if !ok {
				return writeCommandError(cmd, fmt.Errorf("registration failed"))
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"registered": true,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Run '%s login' to sign in.\n", AppName)
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("name", "", "user name")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			ctx.Session.Logout()

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"logged_out": true,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			status := ctx.Session.Status()
			user := ctx.Session.User()

			if ctx.JSONMode {
				payload := map[string]any{"status": status}
				if user != nil {
					payload["user"] = user
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(payload)
			}

			switch {
			case user != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.UserName, user.UserEmail)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), string(status))
			}
			return nil
		},
	}
}

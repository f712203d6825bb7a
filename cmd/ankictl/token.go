package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/anki-api/auth"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect API tokens",
	}
	cmd.AddCommand(newTokenIssueCommand(), newTokenInspectCommand())
	return cmd
}

func newTokenIssueCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue <username>",
		Short: "Print a bearer token for username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			settings := auth.SettingsFromEnvironment(env)
			if ttl > 0 {
				settings.TTL = ttl
			}

			token, err := auth.CreateToken(settings, args[0])
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to TOKEN_TTL)")
	return cmd
}

func newTokenInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and print its subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}

			username, err := auth.VerifyToken(auth.SettingsFromEnvironment(env), args[0])
			if err != nil {
				return fmt.Errorf("invalid token: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "valid token for %s\n", username)
			return nil
		},
	}
}

// Command ankictl is the operator tool for the anki API: schema migration,
// user provisioning and token issuing.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/anki-api/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ankictl",
		Short:         "Operate the anki API database and tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCommand(),
		newUserCommand(),
		newTokenCommand(),
	)
	return root
}

func loadEnvironment() (config.Environment, error) {
	// .env is optional, the real environment wins
	_ = godotenv.Load()
	return config.LoadEnvironment()
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			if _, err := config.Connect(env); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

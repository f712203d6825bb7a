package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrewpaige1/anki-api/config"
	"github.com/andrewpaige1/anki-api/models"
)

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserAddCommand())
	return cmd
}

func newUserAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user if it does not exist yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			db, err := config.Connect(env)
			if err != nil {
				return err
			}

			user, created, err := addUser(db, args[0])
			if err != nil {
				return err
			}
			if created {
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
			} else {
				color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "user %s already exists (id %d)\n", user.Username, user.ID)
			}
			return nil
		},
	}
}

func addUser(db *gorm.DB, username string) (models.User, bool, error) {
	if username == "" {
		return models.User{}, false, fmt.Errorf("username is required")
	}
	user := models.User{Username: username}
	result := db.Where(models.User{Username: username}).FirstOrCreate(&user)
	if result.Error != nil {
		return models.User{}, false, fmt.Errorf("add user %q: %w", username, result.Error)
	}
	return user, result.RowsAffected > 0, nil
}

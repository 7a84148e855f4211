package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/app"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/config"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type adminOptions struct {
	username string
	email    string
	password string
}

func newRootCmd() *cobra.Command {
	var opts adminOptions

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  "Creates an account with the admin role. Admins cannot register through the API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer store.Close()

			admin, err := createAdmin(cmd.Context(), store, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin created: id=%d username=%s email=%s\n", admin.ID, admin.Username, admin.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "admin username")
	cmd.Flags().StringVar(&opts.email, "email", "", "admin email")
	cmd.Flags().StringVar(&opts.password, "password", "", "admin password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func createAdmin(ctx context.Context, store db.Store, opts adminOptions) (*models.User, error) {
	if err := auth.ValidatePassword(opts.password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(opts.password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		Username:     strings.TrimSpace(opts.username),
		Email:        strings.TrimSpace(opts.email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsVerified:   true,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/config"
	"github.com/shashiranjanraj/decorhub/database/seeders"
	"github.com/shashiranjanraj/decorhub/internal/server"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/logger"
)

const commandTimeout = 30 * time.Second

// bootStore loads config and opens the configured store. OpenStore ensures
// the MongoDB indexes on the way.
func bootStore(ctx context.Context) (*server.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{Env: cfg.AppEnv(), Level: cfg.LogLevel()})
	return server.OpenStore(ctx, cfg)
}

// decorhub db:index
var indexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes the API relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		app, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Indexes are in place.")
		return nil
	},
}

// decorhub db:seed
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Insert starter data into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		app, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(ctx, app.Store, cmd.OutOrStdout())
	},
}

// decorhub user:role <email> <role>
var userRoleCmd = &cobra.Command{
	Use:   "user:role <email> <role>",
	Short: "Set a registered user's role (user, decorator, admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, role := args[0], args[1]
		if !models.ValidRole(role) {
			return fmt.Errorf("unknown role %q", role)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		app, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		res, err := app.Users().PromoteByEmail(ctx, email, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (modified: %d)\n", email, role, res.Modified)
		return nil
	},
}

var tokenTTL time.Duration

// decorhub token <email>
var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Mint a bearer token for local testing with AUTH_DRIVER=jwt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.AuthDriver() != "jwt" {
			return fmt.Errorf("token: AUTH_DRIVER is %q, tokens only work with jwt", cfg.AuthDriver())
		}

		token, err := auth.NewJWTVerifier(cfg.JWTSecret()).GenerateToken(args[0], tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

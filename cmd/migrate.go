package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/aboh-server/database"
	"github.com/dtroode/aboh-server/internal/config"
)

var (
	migrateUp     = database.Migrate
	migrateDown   = database.Rollback
	migrateStatus = database.Status
)

// NewMigrateCmd creates the migrate command with up, down and status subcommands.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(newMigrationCmd("up", "Apply all pending migrations", "Migrations completed successfully", func(ctx context.Context, dsn string) error {
		return migrateUp(ctx, dsn)
	}))
	cmd.AddCommand(newMigrationCmd("down", "Roll back the most recent migration", "Rollback completed successfully", func(ctx context.Context, dsn string) error {
		return migrateDown(ctx, dsn)
	}))
	cmd.AddCommand(newMigrationCmd("status", "Print applied and pending migrations", "", func(ctx context.Context, dsn string) error {
		return migrateStatus(ctx, dsn)
	}))

	return cmd
}

func newMigrationCmd(use, short, done string, run func(ctx context.Context, dsn string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewDatabaseConfig()
			if err != nil {
				return err
			}

			if err := run(cmd.Context(), cfg.DSN); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}

			if done != "" {
				cmd.Println(done)
			}
			return nil
		},
	}
}

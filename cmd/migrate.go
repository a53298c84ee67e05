package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	withDB := func(cmd *cobra.Command, run func(db *sqlx.DB, log logger.Logger) error) error {
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		log, err := bootstrap.CreateLogger(cfg)
		if err != nil {
			return err
		}
		db, err := database.Connect(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		defer func() { _ = db.Close() }()
		return run(db, log)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(db *sqlx.DB, log logger.Logger) error {
				if err := database.MigrateUp(db, log); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(db *sqlx.DB, log logger.Logger) error {
				if err := database.MigrateDown(db, steps, log); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(up, down)
	return migrateCmd
}

func printVersion(cmd *cobra.Command, db *sqlx.DB) error {
	version, dirty, err := database.MigrationVersion(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hungrybaby/recipes-api/backend/config"
	"github.com/hungrybaby/recipes-api/backend/internal/database"
	"github.com/hungrybaby/recipes-api/backend/internal/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back database migrations",
		Description: `Applies migrations/*.sql in name order on postgres, recording each one in the
migrations table. On sqlite the schema is auto-migrated from the models instead.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the last applied migration using its _rollback.sql file",
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Directory holding the migration files (defaults to MIGRATIONS_DIR)",
				Sources: cli.EnvVars("MIGRATIONS_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logging.SetDefaultStructuredLogger("migrate", version, cfg.LogLevel)

			dir := cmd.String("dir")
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			db = db.WithContext(ctx)

			if cmd.Bool("rollback") {
				name, err := database.RollbackLastMigration(db, dir)
				if err != nil {
					return err
				}
				if name == "" {
					fmt.Fprintln(cmd.Root().Writer, "No migrations to rollback")
					return nil
				}
				fmt.Fprintf(cmd.Root().Writer, "Successfully rolled back migration: %s\n", name)
				return nil
			}

			if err := database.RunMigrations(db, dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "All migrations applied successfully.")
			return nil
		},
	}
}

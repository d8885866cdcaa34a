package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hungrybaby/recipes-api/backend/config"
	"github.com/hungrybaby/recipes-api/backend/internal/database"
	"github.com/hungrybaby/recipes-api/backend/internal/logging"
	"github.com/hungrybaby/recipes-api/backend/internal/service"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed_recipes",
		Usage: "Load recipes from a YAML fixture into the database",
		Description: `Upserts recipes by slug together with their content and FAQs, and product
plugs by name. Featured images given as local paths are resolved relative to
the fixture file and uploaded to S3 when --upload-images is set.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the YAML fixture",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "upload-images",
				Usage: "Upload local featured images to S3_BUCKET_NAME",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logging.SetDefaultStructuredLogger("seed_recipes", version, cfg.LogLevel)

			path := cmd.String("file")
			file, err := service.LoadSeedFile(path)
			if err != nil {
				return err
			}

			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if cfg.DBDriver == config.DriverSQLite {
				if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
					return err
				}
			}

			var images service.IImageService
			if cmd.Bool("upload-images") {
				s3Config, err := config.NewS3Config(ctx, cfg)
				if err != nil {
					return err
				}
				images = service.NewImageService(s3Config)
			}

			result, err := service.NewSeedService(db, images).Seed(ctx, file, filepath.Dir(path))
			if err != nil {
				return err
			}

			slog.Info("seeding complete",
				"created", result.Created,
				"updated", result.Updated,
				"product_plugs", result.ProductPlugs)
			fmt.Fprintf(cmd.Root().Writer, "Seeded %d new and %d updated recipes, %d product plugs\n",
				result.Created, result.Updated, result.ProductPlugs)
			return nil
		},
	}
}

// @title           Irrigation API
// @version         1.0
// @description     REST API каталога оросительного оборудования: товары, галерея, документы, заявки, контент главной страницы и загрузка файлов.
// @contact.name    Irrigation Systems
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"
	"time"

	"irrigation_backend/internal/app"
	"irrigation_backend/internal/database"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/services/dto"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	serve := serveCmd(&configPath)
	cmd := &cobra.Command{
		Use:           "web",
		Short:         "Irrigation products API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML), default $CONFIG_PATH or config/config.yaml")

	cmd.AddCommand(serve, migrateCmd(&configPath), sweepUploadsCmd(&configPath))
	return cmd
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Setup(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := app.SignalContext()
			defer stop()
			return app.Run(ctx, cfg)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Setup(*configPath)
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			logger.Info("Database schema is up to date")
			return nil
		},
	}
}

func sweepUploadsCmd(configPath *string) *cobra.Command {
	var remove bool
	var minAge time.Duration

	cmd := &cobra.Command{
		Use:   "sweep-uploads",
		Short: "List uploaded files no record references",
		Long: `Scans the upload root and prints every stored file that no product, gallery
item, download or partner points to. With --delete the files are removed.
Files younger than --min-age (upload.orphan_min_age by default) are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Setup(*configPath)
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			application, err := app.New(cfg, db, app.Deps{})
			if err != nil {
				return err
			}

			opts := dto.SweepOptions{Remove: remove, MinAge: cfg.Upload.OrphanMinAge}
			if cmd.Flags().Changed("min-age") {
				opts.MinAge = minAge
			}
			if opts.MinAge < 0 {
				return fmt.Errorf("--min-age must not be negative, got %s", opts.MinAge)
			}

			report, err := application.SweepUploads(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range report.Orphans {
				fmt.Fprintln(out, application.PublicURL(p))
			}
			fmt.Fprintf(out, "scanned: %d, orphans: %d (%d bytes), too recent: %d, removed: %d\n",
				report.Scanned, len(report.Orphans), report.Bytes, report.Recent, report.Removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "Remove the orphaned files")
	cmd.Flags().DurationVar(&minAge, "min-age", 24*time.Hour, "Skip files modified more recently than this")
	return cmd
}

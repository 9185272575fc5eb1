package main

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/app"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCommand(version string) *cobra.Command {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront catalog service",
		Long:          "Отдает каталог товаров и магазинов по HTTP. Настраивается переменными окружения STOREFRONT_*.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and serve the catalog API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, application *app.App, _ logger.Logger) error {
				return application.Run(ctx)
			})
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create catalog tables if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, application *app.App, log logger.Logger) error {
				defer application.Close()

				if err := application.Migrate(ctx); err != nil {
					return err
				}

				log.Infof("schema is up to date")
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty catalog with the default products and stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, application *app.App, log logger.Logger) error {
				defer application.Close()

				res, err := application.Seed(ctx)
				if err != nil {
					return err
				}

				if res.Seeded {
					fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products and %d stores\n", res.Products, res.Stores)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "catalog already seeded")
				}
				return nil
			})
		},
	}
}

// withApp загружает конфигурацию, создает логгер и приложение и передает их в fn.
func withApp(ctx context.Context, fn func(ctx context.Context, application *app.App, log logger.Logger) error) error {
	bootstrap := logger.New("info", logger.FormatJSON)

	cfg, err := config.Load(bootstrap)
	if err != nil {
		bootstrap.Errorf(err, "failed to load config")
		return err
	}

	log := logger.New(cfg.App.LogLevel, logger.Format(cfg.App.LogFormat)).With("env", cfg.App.Env)

	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return err
	}

	if err := fn(ctx, application, log); err != nil {
		log.Errorf(err, "command failed")
		return err
	}

	return nil
}

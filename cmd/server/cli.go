package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/memos-api/internal/config"
	"github.com/phrazzld/memos-api/internal/platform/logger"
	"github.com/urfave/cli/v3"
)

// errMissingMigrationCommand is returned when migrate is run without a command.
var errMissingMigrationCommand = errors.New("missing migration command")

// newCommand builds the root command. Running it without a subcommand serves
// the API.
func newCommand() *cli.Command {
	var configPath string

	serve := func(ctx context.Context, _ *cli.Command) error {
		cfg, log, err := bootstrap(configPath)
		if err != nil {
			return err
		}
		return runServer(ctx, cfg, log)
	}

	return &cli.Command{
		Name:  "memos-api",
		Usage: "REST API for memos with due dates and completion state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to a YAML config file",
				Sources:     cli.EnvVars(config.EnvPrefix + "_CONFIG_FILE"),
				Destination: &configPath,
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:      "migrate",
				Aliases:   []string{"m"},
				Usage:     "Apply or inspect database migrations",
				ArgsUsage: "<" + strings.Join(migrationCommands, "|") + ">",
				Action: func(ctx context.Context, c *cli.Command) error {
					command := c.Args().First()
					if command == "" {
						return fmt.Errorf("%w: expected one of %s",
							errMissingMigrationCommand, strings.Join(migrationCommands, ", "))
					}

					cfg, log, err := bootstrap(configPath)
					if err != nil {
						return err
					}
					return runMigrations(ctx, cfg, log, command)
				},
			},
		},
	}
}

// bootstrap loads configuration and installs the process logger.
func bootstrap(configPath string) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("env", cfg.App.Env),
		slog.String("addr", cfg.Server.Addr()),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("database_configured", cfg.Database.URL != ""))

	return cfg, log, nil
}

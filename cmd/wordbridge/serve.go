package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aomurata/wordbridge/internal/command"
	"github.com/aomurata/wordbridge/internal/config"
	"github.com/aomurata/wordbridge/internal/database"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/host"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the native messaging host on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	// stdout carries the protocol; logs go to stderr.
	logger := newLogger(cfg.Log)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer db.Close()
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("store.Migrate() > %w", err)
	}

	repositories := store.New(db)

	// Imported content wins; the YAML file serves fresh installs.
	entries, err := repositories.Dictionary.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("Dictionary.LoadAll() > %w", err)
	}
	if len(entries) == 0 {
		entries, err = dictionary.LoadFile(cfg.Dictionary.Path)
		if err != nil {
			return fmt.Errorf("dictionary.LoadFile() > %w", err)
		}
	}

	dict := dictionary.NewService(entries, repositories.Stats, logger)
	logger.Info().Int("entries", dict.Size()).Msg("dictionary loaded")

	validator, err := protocol.NewValidator()
	if err != nil {
		return fmt.Errorf("protocol.NewValidator() > %w", err)
	}

	dispatcher := command.NewDispatcher(validator, dict, command.Stores{
		Lists:    repositories.Lists,
		Words:    repositories.Words,
		Stats:    repositories.Stats,
		Searches: repositories.Searches,
		Settings: repositories.Settings,
	}, logger)

	group, ctx := errgroup.WithContext(ctx)

	stdio := host.NewStdio(os.Stdin, os.Stdout, dispatcher, logger)
	group.Go(func() error {
		defer cancel()
		err := stdio.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.HTTP.Enabled {
		server := &http.Server{
			Addr:    cfg.HTTP.Address,
			Handler: host.NewHTTPBridge(dispatcher, logger),
		}
		group.Go(func() error {
			logger.Info().Str("address", cfg.HTTP.Address).Msg("http bridge listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	return group.Wait()
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := os.Stderr
	if cfg.Path != "" {
		if f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

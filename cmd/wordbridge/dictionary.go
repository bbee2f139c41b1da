package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/aomurata/wordbridge/internal/config"
	"github.com/aomurata/wordbridge/internal/database"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/store"
)

func newDictionaryCommand() *cobra.Command {
	dictionaryCmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Dictionary content commands",
	}
	dictionaryCmd.AddCommand(
		newDictionaryPullCommand(),
		newDictionaryImportCommand(),
		newDictionaryCheckCommand(),
	)
	return dictionaryCmd
}

func openDictionaryStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, *store.DBDictionaryRepository, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := store.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("store.Migrate() > %w", err)
	}
	return db, store.NewDBDictionaryRepository(db), nil
}

func newDictionaryPullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <url>",
		Short: "Download a published dictionary file and import it into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			var body []byte
			client := resty.New()
			if err := retry.Do(
				func() error {
					res, err := client.R().
						SetContext(cmd.Context()).
						Get(args[0])
					if err != nil {
						return fmt.Errorf("client.R.Get > %w", err)
					}
					if res.IsError() {
						return fmt.Errorf("unexpected status %s", res.Status())
					}
					body = res.Body()
					return nil
				},
				retry.Context(cmd.Context()),
				retry.Attempts(3),
				retry.Delay(time.Second),
			); err != nil {
				return err
			}

			// Reject a broken file before replacing the current one.
			entries, err := dictionary.Parse(body)
			if err != nil {
				return fmt.Errorf("downloaded file is not a valid dictionary: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(cfg.Dictionary.Path), 0o755); err != nil {
				return fmt.Errorf("create dictionary directory: %w", err)
			}
			if err := os.WriteFile(cfg.Dictionary.Path, body, 0o644); err != nil {
				return fmt.Errorf("write dictionary file: %w", err)
			}
			fmt.Printf("Wrote %d entries to %s\n", len(entries), cfg.Dictionary.Path)

			return importEntries(cmd.Context(), cfg, entries)
		},
	}
}

func newDictionaryImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Load a YAML dictionary file into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			path := cfg.Dictionary.Path
			if len(args) == 1 {
				path = args[0]
			}

			entries, err := dictionary.LoadFile(path)
			if err != nil {
				return err
			}
			return importEntries(cmd.Context(), cfg, entries)
		},
	}
}

func importEntries(ctx context.Context, cfg *config.Config, entries []dictionary.Entry) error {
	db, repo, err := openDictionaryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("import dictionary entries: %w", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count dictionary entries: %w", err)
	}
	fmt.Printf("Database now holds %d dictionary entries\n", count)
	return nil
}

func newDictionaryCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a dictionary file and report its entry count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return fmt.Errorf("loadConfig() > %w", err)
				}
				path = cfg.Dictionary.Path
			}

			entries, err := dictionary.LoadFile(path)
			if err != nil {
				return err
			}

			seen := make(map[string]bool, len(entries))
			duplicates := 0
			for _, entry := range entries {
				key := strings.ToLower(strings.TrimSpace(entry.Word))
				if seen[key] {
					duplicates++
					continue
				}
				seen[key] = true
			}
			fmt.Printf("%s: %d entries, %d duplicates\n", path, len(entries), duplicates)
			return nil
		},
	}
}

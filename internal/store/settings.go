package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Settings is the single host settings record.
type Settings struct {
	Theme                 string `db:"theme"`
	AutoPlayPronunciation bool   `db:"auto_play_pronunciation"`
	ShowExampleSentences  bool   `db:"show_example_sentences"`
	TextSelectionMode     string `db:"text_selection_mode"`
	AutoAddLookups        bool   `db:"auto_add_lookups"`
}

// DefaultSettings returns the values a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:                 "system",
		AutoPlayPronunciation: false,
		ShowExampleSentences:  true,
		TextSelectionMode:     "doubleClick",
		AutoAddLookups:        false,
	}
}

// SettingsRepository defines the settings record operations.
type SettingsRepository interface {
	// GetOrCreate returns the settings record, creating it with defaults
	// on first read.
	GetOrCreate(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}

// DBSettingsRepository implements SettingsRepository using SQLite.
type DBSettingsRepository struct {
	db *sqlx.DB
}

// NewDBSettingsRepository creates a new DBSettingsRepository.
func NewDBSettingsRepository(db *sqlx.DB) *DBSettingsRepository {
	return &DBSettingsRepository{db: db}
}

// GetOrCreate reads the settings row, inserting the defaults when the row
// does not exist yet.
func (r *DBSettingsRepository) GetOrCreate(ctx context.Context) (Settings, error) {
	var settings Settings
	err := r.db.GetContext(ctx, &settings,
		"SELECT theme, auto_play_pronunciation, show_example_sentences, text_selection_mode, auto_add_lookups FROM settings WHERE id = 1")
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings = DefaultSettings()
	if err := r.Save(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Save upserts the single settings row.
func (r *DBSettingsRepository) Save(ctx context.Context, settings Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, theme, auto_play_pronunciation, show_example_sentences, text_selection_mode, auto_add_lookups)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			auto_play_pronunciation = excluded.auto_play_pronunciation,
			show_example_sentences = excluded.show_example_sentences,
			text_selection_mode = excluded.text_selection_mode,
			auto_add_lookups = excluded.auto_add_lookups`,
		settings.Theme, settings.AutoPlayPronunciation, settings.ShowExampleSentences,
		settings.TextSelectionMode, settings.AutoAddLookups)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

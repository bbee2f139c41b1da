// Package store persists vocabulary lists, words, review history, lookup
// statistics, recent searches, settings and imported dictionary content
// in SQLite.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS vocabulary_lists (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	is_default INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS words (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	list_id       TEXT NOT NULL REFERENCES vocabulary_lists(id),
	word_key      TEXT NOT NULL,
	word          TEXT NOT NULL,
	date_added    DATETIME NOT NULL,
	difficulty    INTEGER NOT NULL DEFAULT 0,
	custom_notes  TEXT NOT NULL DEFAULT '',
	last_reviewed DATETIME,
	next_review   DATETIME NOT NULL,
	UNIQUE(list_id, word_key)
);

CREATE TABLE IF NOT EXISTS review_history (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	word_id      INTEGER NOT NULL REFERENCES words(id),
	reviewed_at  DATETIME NOT NULL,
	result       TEXT NOT NULL,
	time_spent   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_review_history_word ON review_history(word_id);

CREATE TABLE IF NOT EXISTS lookup_stats (
	word         TEXT PRIMARY KEY,
	count        INTEGER NOT NULL DEFAULT 0,
	first_lookup DATETIME NOT NULL,
	last_lookup  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS dictionary_entries (
	word_key TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	entry    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recent_searches (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	word        TEXT NOT NULL,
	searched_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	id                      INTEGER PRIMARY KEY CHECK (id = 1),
	theme                   TEXT NOT NULL,
	auto_play_pronunciation INTEGER NOT NULL,
	show_example_sentences  INTEGER NOT NULL,
	text_selection_mode     TEXT NOT NULL,
	auto_add_lookups        INTEGER NOT NULL
);
`

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

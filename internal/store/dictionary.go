package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aomurata/wordbridge/internal/database"
	"github.com/aomurata/wordbridge/internal/dictionary"
)

// DictionaryRepository defines the imported dictionary content operations.
type DictionaryRepository interface {
	// ReplaceAll swaps the stored dictionary for entries in one transaction.
	ReplaceAll(ctx context.Context, entries []dictionary.Entry) error
	LoadAll(ctx context.Context) ([]dictionary.Entry, error)
	Count(ctx context.Context) (int, error)
}

// DBDictionaryRepository implements DictionaryRepository using SQLite.
// Entries are stored as JSON documents keyed by their normalized word;
// position preserves import order so fuzzy-match ties stay stable.
type DBDictionaryRepository struct {
	db *sqlx.DB
}

// NewDBDictionaryRepository creates a new DBDictionaryRepository.
func NewDBDictionaryRepository(db *sqlx.DB) *DBDictionaryRepository {
	return &DBDictionaryRepository{db: db}
}

// ReplaceAll replaces the stored dictionary with entries. A later duplicate
// of the same word overwrites the earlier one, matching the in-memory
// service keeping one entry per normalized word.
func (r *DBDictionaryRepository) ReplaceAll(ctx context.Context, entries []dictionary.Entry) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM dictionary_entries"); err != nil {
			return fmt.Errorf("clear dictionary entries: %w", err)
		}
		for i, entry := range entries {
			key := strings.ToLower(strings.TrimSpace(entry.Word))
			if key == "" {
				continue
			}
			doc, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("encode dictionary entry %q: %w", entry.Word, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dictionary_entries (word_key, position, entry) VALUES (?, ?, ?)
					ON CONFLICT(word_key) DO UPDATE SET position = excluded.position, entry = excluded.entry`,
				key, i, doc); err != nil {
				return fmt.Errorf("insert dictionary entry %q: %w", entry.Word, err)
			}
		}
		return nil
	})
}

// LoadAll returns every stored entry in import order.
func (r *DBDictionaryRepository) LoadAll(ctx context.Context) ([]dictionary.Entry, error) {
	var docs []string
	if err := r.db.SelectContext(ctx, &docs,
		"SELECT entry FROM dictionary_entries ORDER BY position, word_key"); err != nil {
		return nil, fmt.Errorf("load dictionary entries: %w", err)
	}
	entries := make([]dictionary.Entry, len(docs))
	for i, doc := range docs {
		if err := json.Unmarshal([]byte(doc), &entries[i]); err != nil {
			return nil, fmt.Errorf("decode dictionary entry: %w", err)
		}
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (r *DBDictionaryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM dictionary_entries"); err != nil {
		return 0, fmt.Errorf("count dictionary entries: %w", err)
	}
	return count, nil
}

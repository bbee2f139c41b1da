package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aomurata/wordbridge/internal/database"
)

// RecentSearchCap is how many recent searches are retained. Adding one
// more deletes the oldest overflow.
const RecentSearchCap = 10

// SearchRepository defines the recent-search history operations.
type SearchRepository interface {
	Add(ctx context.Context, word string, at time.Time) error
	Recent(ctx context.Context, limit int) ([]string, error)
}

// DBSearchRepository implements SearchRepository using SQLite.
type DBSearchRepository struct {
	db *sqlx.DB
}

// NewDBSearchRepository creates a new DBSearchRepository.
func NewDBSearchRepository(db *sqlx.DB) *DBSearchRepository {
	return &DBSearchRepository{db: db}
}

// Add appends one search and trims the history to RecentSearchCap entries,
// oldest first, in the same transaction.
func (r *DBSearchRepository) Add(ctx context.Context, word string, at time.Time) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recent_searches (word, searched_at) VALUES (?, ?)", word, at); err != nil {
			return fmt.Errorf("insert recent search: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recent_searches WHERE id NOT IN (
				SELECT id FROM recent_searches ORDER BY searched_at DESC, id DESC LIMIT ?)`,
			RecentSearchCap); err != nil {
			return fmt.Errorf("trim recent searches: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit searched words, most recent first.
func (r *DBSearchRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || limit > RecentSearchCap {
		limit = RecentSearchCap
	}
	var words []string
	if err := r.db.SelectContext(ctx, &words,
		"SELECT word FROM recent_searches ORDER BY searched_at DESC, id DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}
	return words, nil
}

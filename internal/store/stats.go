package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aomurata/wordbridge/internal/dictionary"
)

type statsRecord struct {
	Word        string    `db:"word"`
	Count       int       `db:"count"`
	FirstLookup time.Time `db:"first_lookup"`
	LastLookup  time.Time `db:"last_lookup"`
}

func (record statsRecord) toDomain() dictionary.LookupStats {
	return dictionary.LookupStats{
		Word:        record.Word,
		Count:       record.Count,
		FirstLookup: record.FirstLookup,
		LastLookup:  record.LastLookup,
	}
}

// DBStatsRepository implements dictionary.StatsRepository using SQLite.
type DBStatsRepository struct {
	db *sqlx.DB
}

var _ dictionary.StatsRepository = (*DBStatsRepository)(nil)

// NewDBStatsRepository creates a new DBStatsRepository.
func NewDBStatsRepository(db *sqlx.DB) *DBStatsRepository {
	return &DBStatsRepository{db: db}
}

// Find returns one word's lookup stats, or nil when never looked up.
func (r *DBStatsRepository) Find(ctx context.Context, word string) (*dictionary.LookupStats, error) {
	var record statsRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM lookup_stats WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load lookup stats: %w", err)
	}
	stats := record.toDomain()
	return &stats, nil
}

// FindAll returns lookup stats for every word ever looked up.
func (r *DBStatsRepository) FindAll(ctx context.Context) ([]dictionary.LookupStats, error) {
	var records []statsRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM lookup_stats ORDER BY word"); err != nil {
		return nil, fmt.Errorf("load all lookup stats: %w", err)
	}
	stats := make([]dictionary.LookupStats, len(records))
	for i, record := range records {
		stats[i] = record.toDomain()
	}
	return stats, nil
}

// Record creates the word's stats on first lookup and increments the count
// thereafter. first_lookup is written once and never changes.
func (r *DBStatsRepository) Record(ctx context.Context, word string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO lookup_stats (word, count, first_lookup, last_lookup) VALUES (?, 1, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET count = count + 1, last_lookup = excluded.last_lookup`,
		word, at, at)
	if err != nil {
		return fmt.Errorf("record lookup: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/database"
	"github.com/aomurata/wordbridge/internal/review"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

type wordRecord struct {
	ID           int64      `db:"id"`
	ListID       string     `db:"list_id"`
	WordKey      string     `db:"word_key"`
	Word         string     `db:"word"`
	DateAdded    time.Time  `db:"date_added"`
	Difficulty   int        `db:"difficulty"`
	CustomNotes  string     `db:"custom_notes"`
	LastReviewed *time.Time `db:"last_reviewed"`
	NextReview   time.Time  `db:"next_review"`
}

func (record wordRecord) toDomain() *vocabulary.WordEntry {
	return &vocabulary.WordEntry{
		Word:         record.Word,
		DateAdded:    record.DateAdded,
		Difficulty:   record.Difficulty,
		CustomNotes:  record.CustomNotes,
		LastReviewed: record.LastReviewed,
		NextReview:   record.NextReview,
	}
}

type reviewRecord struct {
	ID         int64     `db:"id"`
	WordID     int64     `db:"word_id"`
	ReviewedAt time.Time `db:"reviewed_at"`
	Result     string    `db:"result"`
	TimeSpent  int64     `db:"time_spent"`
}

func (record reviewRecord) toDomain() vocabulary.ReviewRecord {
	return vocabulary.ReviewRecord{
		Date:      record.ReviewedAt,
		Result:    review.Result(record.Result),
		TimeSpent: record.TimeSpent,
	}
}

// WordRepository defines persistence for words inside a list.
type WordRepository interface {
	Insert(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry) error
	Update(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry) error
	// SaveReview persists the review outcome and its history entry
	// atomically. The history table is append-only.
	SaveReview(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry, record vocabulary.ReviewRecord) error
}

// DBWordRepository implements WordRepository using SQLite.
type DBWordRepository struct {
	db *sqlx.DB
}

// NewDBWordRepository creates a new DBWordRepository.
func NewDBWordRepository(db *sqlx.DB) *DBWordRepository {
	return &DBWordRepository{db: db}
}

// Insert adds a word to a list. The UNIQUE(list_id, word_key) constraint
// backs the in-memory dedup check.
func (r *DBWordRepository) Insert(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO words (list_id, word_key, word, date_added, difficulty, custom_notes, last_reviewed, next_review)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		listID.String(), key, entry.Word, entry.DateAdded, entry.Difficulty,
		entry.CustomNotes, entry.LastReviewed, entry.NextReview)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperr.Duplicate("word %q is already in the list", key)
		}
		return fmt.Errorf("insert word: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing word.
func (r *DBWordRepository) Update(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE words SET difficulty = ?, custom_notes = ? WHERE list_id = ? AND word_key = ?",
		entry.Difficulty, entry.CustomNotes, listID.String(), key)
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("word %q is not in the list", key)
	}
	return nil
}

// SaveReview updates the word's review cadence and appends the history
// entry in one transaction.
func (r *DBWordRepository) SaveReview(ctx context.Context, listID uuid.UUID, key string, entry *vocabulary.WordEntry, record vocabulary.ReviewRecord) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var wordID int64
		err := tx.GetContext(ctx, &wordID,
			"SELECT id FROM words WHERE list_id = ? AND word_key = ?", listID.String(), key)
		if err != nil {
			return fmt.Errorf("find word for review: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE words SET last_reviewed = ?, next_review = ? WHERE id = ?",
			entry.LastReviewed, entry.NextReview, wordID); err != nil {
			return fmt.Errorf("update review state: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO review_history (word_id, reviewed_at, result, time_spent) VALUES (?, ?, ?, ?)",
			wordID, record.Date, string(record.Result), record.TimeSpent); err != nil {
			return fmt.Errorf("append review history: %w", err)
		}
		return nil
	})
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aomurata/wordbridge/internal/vocabulary"
)

type listRecord struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	IsDefault bool      `db:"is_default"`
}

// ListRepository defines operations for managing vocabulary lists.
type ListRepository interface {
	Create(ctx context.Context, list *vocabulary.List) error
	// Find returns the list with its words loaded, or nil when absent.
	Find(ctx context.Context, id uuid.UUID) (*vocabulary.List, error)
	FindAll(ctx context.Context) ([]*vocabulary.List, error)
}

// DBListRepository implements ListRepository using SQLite.
type DBListRepository struct {
	db *sqlx.DB
}

// NewDBListRepository creates a new DBListRepository.
func NewDBListRepository(db *sqlx.DB) *DBListRepository {
	return &DBListRepository{db: db}
}

// Create inserts a new, empty vocabulary list.
func (r *DBListRepository) Create(ctx context.Context, list *vocabulary.List) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vocabulary_lists (id, name, created_at, is_default) VALUES (?, ?, ?, ?)",
		list.ID.String(), list.Name, list.CreatedAt, list.IsDefault)
	if err != nil {
		return fmt.Errorf("insert vocabulary list: %w", err)
	}
	return nil
}

// Find returns one list with its words and review histories, or nil when
// the id is unknown.
func (r *DBListRepository) Find(ctx context.Context, id uuid.UUID) (*vocabulary.List, error) {
	var record listRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM vocabulary_lists WHERE id = ?", id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vocabulary list: %w", err)
	}

	list, err := r.toDomain(record)
	if err != nil {
		return nil, err
	}
	if err := r.loadWords(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// FindAll returns every list with words and review histories loaded.
func (r *DBListRepository) FindAll(ctx context.Context) ([]*vocabulary.List, error) {
	var records []listRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM vocabulary_lists ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("load all vocabulary lists: %w", err)
	}

	lists := make([]*vocabulary.List, 0, len(records))
	for _, record := range records {
		list, err := r.toDomain(record)
		if err != nil {
			return nil, err
		}
		if err := r.loadWords(ctx, list); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

func (r *DBListRepository) toDomain(record listRecord) (*vocabulary.List, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, fmt.Errorf("parse stored list id %q: %w", record.ID, err)
	}
	return &vocabulary.List{
		ID:        id,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
		IsDefault: record.IsDefault,
		Words:     make(map[string]*vocabulary.WordEntry),
	}, nil
}

func (r *DBListRepository) loadWords(ctx context.Context, list *vocabulary.List) error {
	var records []wordRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM words WHERE list_id = ? ORDER BY id", list.ID.String()); err != nil {
		return fmt.Errorf("load words for list %s: %w", list.ID, err)
	}
	if len(records) == 0 {
		return nil
	}

	wordIDs := make([]int64, len(records))
	for i, record := range records {
		wordIDs[i] = record.ID
	}
	query, args, err := sqlx.In(
		"SELECT * FROM review_history WHERE word_id IN (?) ORDER BY word_id, id", wordIDs)
	if err != nil {
		return fmt.Errorf("build review history query: %w", err)
	}
	var reviews []reviewRecord
	if err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load review history for list %s: %w", list.ID, err)
	}

	historyByWord := make(map[int64][]vocabulary.ReviewRecord)
	for _, review := range reviews {
		historyByWord[review.WordID] = append(historyByWord[review.WordID], review.toDomain())
	}
	for _, record := range records {
		entry := record.toDomain()
		entry.ReviewHistory = historyByWord[record.ID]
		if entry.ReviewHistory == nil {
			entry.ReviewHistory = []vocabulary.ReviewRecord{}
		}
		list.Words[record.WordKey] = entry
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSearchRepository_Add(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inserts and trims in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBSearchRepository(db)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO recent_searches \(word, searched_at\) VALUES \(\?, \?\)`).
			WithArgs("hello", now).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("DELETE FROM recent_searches WHERE id NOT IN").
			WithArgs(RecentSearchCap).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Add(context.Background(), "hello", now)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBSearchRepository(db)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO recent_searches").
			WillReturnError(fmt.Errorf("database is locked"))
		mock.ExpectRollback()

		err := repo.Add(context.Background(), "hello", now)

		assert.ErrorContains(t, err, "insert recent search")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("trim failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBSearchRepository(db)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO recent_searches").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("DELETE FROM recent_searches WHERE id NOT IN").
			WillReturnError(fmt.Errorf("database is locked"))
		mock.ExpectRollback()

		err := repo.Add(context.Background(), "hello", now)

		assert.ErrorContains(t, err, "trim recent searches")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBSearchRepository_Recent(t *testing.T) {
	t.Run("returns most recent first", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBSearchRepository(db)
		mock.ExpectQuery("SELECT word FROM recent_searches ORDER BY searched_at DESC, id DESC LIMIT").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"word"}).AddRow("beta").AddRow("alpha"))

		words, err := repo.Recent(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"beta", "alpha"}, words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero and oversized limits fall back to the cap", func(t *testing.T) {
		for _, limit := range []int{0, -5, RecentSearchCap + 1} {
			db, mock := newMockDB(t)
			repo := NewDBSearchRepository(db)
			mock.ExpectQuery("SELECT word FROM recent_searches").
				WithArgs(RecentSearchCap).
				WillReturnRows(sqlmock.NewRows([]string{"word"}))

			_, err := repo.Recent(context.Background(), limit)

			require.NoError(t, err, "limit %d", limit)
			assert.NoError(t, mock.ExpectationsWereMet())
		}
	})
}

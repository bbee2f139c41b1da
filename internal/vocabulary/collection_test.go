package vocabulary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/review"
)

type stubStats struct{}

func (stubStats) Find(context.Context, string) (*dictionary.LookupStats, error) { return nil, nil }
func (stubStats) FindAll(context.Context) ([]dictionary.LookupStats, error)     { return nil, nil }
func (stubStats) Record(context.Context, string, time.Time) error               { return nil }

func testDictionary(t *testing.T) *dictionary.Service {
	t.Helper()
	return dictionary.NewService([]dictionary.Entry{
		{
			Word:          "Hello",
			FrequencyRank: 120,
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "exclamation", Meaning: "used as a greeting", Examples: []string{"hello there"}},
			},
		},
		{
			Word:          "serendipity",
			FrequencyRank: 24000,
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "noun", Meaning: "finding pleasant things by chance"},
			},
		},
	}, stubStats{}, zerolog.Nop())
}

func emptyList(name string) *List {
	return &List{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Words:     make(map[string]*WordEntry),
	}
}

func TestCollection_AddWord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("adds a dictionary word with canonical casing", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))

		entry, err := collection.AddWord("  HELLO ", Metadata{CustomNotes: "greeting"}, now)

		require.NoError(t, err)
		assert.Equal(t, "Hello", entry.Word)
		assert.Equal(t, 120, entry.Difficulty)
		assert.Equal(t, "greeting", entry.CustomNotes)
		assert.Equal(t, now, entry.DateAdded)
		assert.Equal(t, now.Add(24*time.Hour), entry.NextReview)
		assert.Nil(t, entry.LastReviewed)
		assert.Empty(t, entry.ReviewHistory)

		stored, ok := collection.List().Words["hello"]
		require.True(t, ok, "entry must be stored under the normalized key")
		assert.Same(t, entry, stored)
	})

	t.Run("caller metadata overrides the frequency rank", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))
		difficulty := 9500

		entry, err := collection.AddWord("hello", Metadata{Difficulty: &difficulty}, now)

		require.NoError(t, err)
		assert.Equal(t, 9500, entry.Difficulty)
	})

	t.Run("rejects a duplicate without overwriting", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))
		first, err := collection.AddWord("hello", Metadata{}, now)
		require.NoError(t, err)

		_, err = collection.AddWord(" Hello ", Metadata{}, now.Add(time.Hour))

		require.ErrorIs(t, err, apperr.ErrDuplicate)
		assert.Len(t, collection.List().Words, 1)
		assert.Same(t, first, collection.List().Words["hello"])
	})

	t.Run("rejects a word the dictionary does not contain", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))

		_, err := collection.AddWord("zzyzx", Metadata{}, now)

		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, collection.List().Words)
	})
}

func TestCollection_UpdateWord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("updates only the whitelisted fields", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))
		_, err := collection.AddWord("hello", Metadata{}, now)
		require.NoError(t, err)

		difficulty := 4000
		notes := "say it twice"
		entry, err := collection.UpdateWord("HELLO", Updates{Difficulty: &difficulty, CustomNotes: &notes})

		require.NoError(t, err)
		assert.Equal(t, 4000, entry.Difficulty)
		assert.Equal(t, "say it twice", entry.CustomNotes)
		assert.Equal(t, now, entry.DateAdded)
	})

	t.Run("nil fields keep their values", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))
		_, err := collection.AddWord("hello", Metadata{CustomNotes: "keep me"}, now)
		require.NoError(t, err)

		entry, err := collection.UpdateWord("hello", Updates{})

		require.NoError(t, err)
		assert.Equal(t, 120, entry.Difficulty)
		assert.Equal(t, "keep me", entry.CustomNotes)
	})

	t.Run("missing word fails", func(t *testing.T) {
		collection := NewCollection(emptyList("default"), testDictionary(t))

		_, err := collection.UpdateWord("hello", Updates{})

		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCollection_SubmitReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) *Collection {
		t.Helper()
		collection := NewCollection(emptyList("default"), testDictionary(t))
		_, err := collection.AddWord("hello", Metadata{}, now.AddDate(0, 0, -2))
		require.NoError(t, err)
		return collection
	}

	t.Run("first known review schedules three days out", func(t *testing.T) {
		collection := setup(t)

		entry, nextInterval, err := collection.SubmitReview("hello", review.ResultKnown, 4200, now)

		require.NoError(t, err)
		require.NotNil(t, nextInterval)
		assert.Equal(t, 3, *nextInterval)
		require.NotNil(t, entry.LastReviewed)
		assert.Equal(t, now, *entry.LastReviewed)
		assert.Equal(t, now.AddDate(0, 0, 3), entry.NextReview)

		require.Len(t, entry.ReviewHistory, 1)
		assert.Equal(t, review.ResultKnown, entry.ReviewHistory[0].Result)
		assert.Equal(t, int64(4200), entry.ReviewHistory[0].TimeSpent)
	})

	t.Run("mastered parks the word at the sentinel", func(t *testing.T) {
		collection := setup(t)

		entry, nextInterval, err := collection.SubmitReview("hello", review.ResultMastered, 0, now)

		require.NoError(t, err)
		assert.Nil(t, nextInterval)
		assert.Equal(t, review.FarFuture, entry.NextReview)
	})

	t.Run("history only grows", func(t *testing.T) {
		collection := setup(t)

		_, _, err := collection.SubmitReview("hello", review.ResultUnknown, 0, now)
		require.NoError(t, err)
		_, _, err = collection.SubmitReview("hello", review.ResultKnown, 0, now.AddDate(0, 0, 1))
		require.NoError(t, err)

		entry := collection.Find("hello")
		require.NotNil(t, entry)
		assert.Len(t, entry.ReviewHistory, 2)
		assert.Equal(t, review.ResultUnknown, entry.ReviewHistory[0].Result)
		assert.Equal(t, review.ResultKnown, entry.ReviewHistory[1].Result)
	})

	t.Run("missing word fails", func(t *testing.T) {
		collection := setup(t)

		_, _, err := collection.SubmitReview("serendipity", review.ResultKnown, 0, now)

		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

package command

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/store"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

// In-memory repositories backing the dispatcher tests.

type fakeLists struct {
	order []uuid.UUID
	byID  map[uuid.UUID]*vocabulary.List
	err   error
}

func newFakeLists() *fakeLists {
	return &fakeLists{byID: make(map[uuid.UUID]*vocabulary.List)}
}

func (f *fakeLists) Create(_ context.Context, list *vocabulary.List) error {
	if f.err != nil {
		return f.err
	}
	f.byID[list.ID] = list
	f.order = append(f.order, list.ID)
	return nil
}

func (f *fakeLists) Find(_ context.Context, id uuid.UUID) (*vocabulary.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeLists) FindAll(context.Context) ([]*vocabulary.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	lists := make([]*vocabulary.List, 0, len(f.order))
	for _, id := range f.order {
		lists = append(lists, f.byID[id])
	}
	return lists, nil
}

type fakeWords struct {
	inserts int
	updates int
	reviews int
	err     error
}

func (f *fakeWords) Insert(context.Context, uuid.UUID, string, *vocabulary.WordEntry) error {
	if f.err != nil {
		return f.err
	}
	f.inserts++
	return nil
}

func (f *fakeWords) Update(context.Context, uuid.UUID, string, *vocabulary.WordEntry) error {
	if f.err != nil {
		return f.err
	}
	f.updates++
	return nil
}

func (f *fakeWords) SaveReview(context.Context, uuid.UUID, string, *vocabulary.WordEntry, vocabulary.ReviewRecord) error {
	if f.err != nil {
		return f.err
	}
	f.reviews++
	return nil
}

type fakeStats struct {
	byWord map[string]*dictionary.LookupStats
	err    error
}

func newFakeStats() *fakeStats {
	return &fakeStats{byWord: make(map[string]*dictionary.LookupStats)}
}

func (f *fakeStats) Find(_ context.Context, word string) (*dictionary.LookupStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	stats, ok := f.byWord[word]
	if !ok {
		return nil, nil
	}
	copied := *stats
	return &copied, nil
}

func (f *fakeStats) FindAll(context.Context) ([]dictionary.LookupStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := make([]dictionary.LookupStats, 0, len(f.byWord))
	for _, stats := range f.byWord {
		all = append(all, *stats)
	}
	return all, nil
}

func (f *fakeStats) Record(_ context.Context, word string, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	if stats, ok := f.byWord[word]; ok {
		stats.Count++
		stats.LastLookup = at
		return nil
	}
	f.byWord[word] = &dictionary.LookupStats{Word: word, Count: 1, FirstLookup: at, LastLookup: at}
	return nil
}

type fakeSearches struct {
	words []string
	err   error
}

func (f *fakeSearches) Add(_ context.Context, word string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.words = append(f.words, word)
	if len(f.words) > store.RecentSearchCap {
		f.words = f.words[len(f.words)-store.RecentSearchCap:]
	}
	return nil
}

func (f *fakeSearches) Recent(_ context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit <= 0 || limit > store.RecentSearchCap {
		limit = store.RecentSearchCap
	}
	recent := make([]string, 0, limit)
	for i := len(f.words) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, f.words[i])
	}
	return recent, nil
}

type fakeSettings struct {
	settings store.Settings
	exists   bool
	err      error
}

func (f *fakeSettings) GetOrCreate(context.Context) (store.Settings, error) {
	if f.err != nil {
		return store.Settings{}, f.err
	}
	if !f.exists {
		f.settings = store.DefaultSettings()
		f.exists = true
	}
	return f.settings, nil
}

func (f *fakeSettings) Save(_ context.Context, settings store.Settings) error {
	if f.err != nil {
		return f.err
	}
	f.settings = settings
	f.exists = true
	return nil
}

type testEnv struct {
	dispatcher *Dispatcher
	lists      *fakeLists
	words      *fakeWords
	stats      *fakeStats
	searches   *fakeSearches
	settings   *fakeSettings
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	validator, err := protocol.NewValidator()
	require.NoError(t, err)

	env := &testEnv{
		lists:    newFakeLists(),
		words:    &fakeWords{},
		stats:    newFakeStats(),
		searches: &fakeSearches{},
		settings: &fakeSettings{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	dict := dictionary.NewService([]dictionary.Entry{
		{
			Word:          "hello",
			FrequencyRank: 120,
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "exclamation", Meaning: "used as a greeting"},
			},
		},
		{
			Word:          "help",
			FrequencyRank: 400,
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "verb", Meaning: "make it easier for someone to do something"},
			},
		},
		{
			Word:          "serendipity",
			FrequencyRank: 24000,
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "noun", Meaning: "finding pleasant things by chance"},
			},
		},
	}, env.stats, zerolog.Nop())

	env.dispatcher = NewDispatcher(validator, dict, Stores{
		Lists:    env.lists,
		Words:    env.words,
		Stats:    env.stats,
		Searches: env.searches,
		Settings: env.settings,
	}, zerolog.Nop())
	env.dispatcher.now = func() time.Time { return env.now }
	return env
}

func (e *testEnv) handle(t *testing.T, raw string) protocol.Response {
	t.Helper()
	return e.dispatcher.Handle(context.Background(), []byte(raw))
}

// handleOK asserts a success envelope and returns its data.
func (e *testEnv) handleOK(t *testing.T, raw string) any {
	t.Helper()
	response := e.handle(t, raw)
	require.True(t, response.Success, "expected success, got error %q", response.Error)
	require.Empty(t, response.Error)
	return response.Data
}

// createList runs a createList command and returns the new list's wire id.
func (e *testEnv) createList(t *testing.T, name string) string {
	t.Helper()
	data := e.handleOK(t, fmt.Sprintf(`{"action":"createVocabularyList","name":"%s"}`, name))
	payload, ok := data.(protocol.ListPayload)
	require.True(t, ok)
	return payload.ID
}

func TestDispatcher_Lookup(t *testing.T) {
	t.Run("hit returns the entry and records the search", func(t *testing.T) {
		env := newTestEnv(t)

		data := env.handleOK(t, `{"action":"lookupWord","word":" HELLO "}`)

		lookup, ok := data.(protocol.LookupWordData)
		require.True(t, ok)
		assert.True(t, lookup.Found)
		require.NotNil(t, lookup.Entry)
		assert.Equal(t, "hello", lookup.Entry.Word)
		assert.Equal(t, []string{"hello"}, env.searches.words)
	})

	t.Run("miss returns suggestions", func(t *testing.T) {
		env := newTestEnv(t)

		data := env.handleOK(t, `{"action":"lookupWord","word":"helo"}`)

		lookup, ok := data.(protocol.LookupWordData)
		require.True(t, ok)
		assert.False(t, lookup.Found)
		assert.Nil(t, lookup.Entry)
		assert.Equal(t, []string{"hello", "help"}, lookup.Suggestions)
		assert.Empty(t, env.searches.words, "a miss is not a recent search")
	})

	t.Run("failed search write does not fail the lookup", func(t *testing.T) {
		env := newTestEnv(t)
		env.searches.err = errors.New("disk full")

		data := env.handleOK(t, `{"action":"lookupWord","word":"hello"}`)

		lookup := data.(protocol.LookupWordData)
		assert.True(t, lookup.Found)
	})
}

func TestDispatcher_RequestValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unknown action", func(t *testing.T) {
		response := env.handle(t, `{"action":"teleport"}`)

		assert.False(t, response.Success)
		assert.Equal(t, "Unknown action: teleport", response.Error)
	})

	t.Run("unknown field", func(t *testing.T) {
		response := env.handle(t, `{"action":"lookupWord","word":"hello","bogus":true}`)

		assert.False(t, response.Success)
		assert.Contains(t, response.Error, "Invalid request: ")
		assert.Contains(t, response.Error, "bogus")
	})

	t.Run("missing required field", func(t *testing.T) {
		response := env.handle(t, `{"action":"lookupWord"}`)

		assert.False(t, response.Success)
		assert.Contains(t, response.Error, "Invalid request: ")
	})

	t.Run("malformed json", func(t *testing.T) {
		response := env.handle(t, `{"action"`)

		assert.False(t, response.Success)
		assert.NotEmpty(t, response.Error)
	})

	t.Run("never both data and error", func(t *testing.T) {
		response := env.handle(t, `{"action":"teleport"}`)
		assert.Nil(t, response.Data)
		assert.NotEmpty(t, response.Error)
	})
}

func TestDispatcher_Lists(t *testing.T) {
	t.Run("create and fetch all", func(t *testing.T) {
		env := newTestEnv(t)

		id := env.createList(t, "travel")
		env.createList(t, "cooking")

		data := env.handleOK(t, `{"action":"fetchAllVocabularyLists"}`)
		lists, ok := data.(protocol.ListsData)
		require.True(t, ok)
		require.Len(t, lists.Lists, 2)
		assert.Equal(t, id, lists.Lists[0].ID)
		assert.Equal(t, "travel", lists.Lists[0].Name)
		assert.Equal(t, "cooking", lists.Lists[1].Name)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		response := env.handle(t, `{"action":"createVocabularyList","name":"   "}`)

		assert.False(t, response.Success)
		assert.Equal(t, "List name cannot be empty", response.Error)
	})

	t.Run("malformed list id fails with the exact message", func(t *testing.T) {
		env := newTestEnv(t)

		response := env.handle(t, `{"action":"fetchVocabularyListWords","listId":"not-a-uuid"}`)

		assert.False(t, response.Success)
		assert.Equal(t, "Invalid list ID format", response.Error)
	})

	t.Run("missing list", func(t *testing.T) {
		env := newTestEnv(t)

		raw := fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s"}`, uuid.NewString())
		response := env.handle(t, raw)

		assert.False(t, response.Success)
		assert.Equal(t, "Vocabulary list not found", response.Error)
	})
}

func TestDispatcher_Words(t *testing.T) {
	t.Run("add then update", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")

		data := env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
		added, ok := data.(protocol.WordEntryData)
		require.True(t, ok)
		assert.Equal(t, "hello", added.Word.Word)
		assert.Equal(t, 120, added.Word.Difficulty)
		assert.Equal(t, 1, env.words.inserts)

		raw := fmt.Sprintf(`{"action":"updateWord","listId":"%s","word":"hello","updates":{"difficulty":5000,"customNotes":"wave"}}`, id)
		data = env.handleOK(t, raw)
		updated := data.(protocol.WordEntryData)
		assert.Equal(t, 5000, updated.Word.Difficulty)
		assert.Equal(t, "wave", updated.Word.CustomNotes)
		assert.Equal(t, 1, env.words.updates)
	})

	t.Run("duplicate add fails and keeps the list unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		raw := fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id)

		env.handleOK(t, raw)
		response := env.handle(t, raw)

		assert.False(t, response.Success)
		assert.NotEmpty(t, response.Error)
		assert.Equal(t, 1, env.words.inserts)

		listID := uuid.MustParse(id)
		assert.Len(t, env.lists.byID[listID].Words, 1)
	})

	t.Run("word outside the dictionary is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")

		response := env.handle(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"zzyzx"}`, id))

		assert.False(t, response.Success)
		assert.Zero(t, env.words.inserts)
	})

	t.Run("fetch words filters and sorts", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"serendipity"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"help"}`, id))

		data := env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s"}`, id))
		all := data.(protocol.ListWordsData)
		require.Len(t, all.Words, 3)
		assert.Equal(t, "hello", all.Words[0].Word, "default sort is alphabetical ascending")
		assert.Equal(t, "help", all.Words[1].Word)
		assert.Equal(t, "serendipity", all.Words[2].Word)

		data = env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s","filterBy":"easy"}`, id))
		easy := data.(protocol.ListWordsData)
		require.Len(t, easy.Words, 2)

		raw := fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s","sortBy":"difficulty","sortOrder":"desc"}`, id)
		data = env.handleOK(t, raw)
		byDifficulty := data.(protocol.ListWordsData)
		assert.Equal(t, "serendipity", byDifficulty.Words[0].Word)
	})

	t.Run("fetch words merges dictionary data and lookup stats", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"serendipity"}`, id))
		env.handleOK(t, `{"action":"lookupWord","word":"hello"}`)
		env.handleOK(t, `{"action":"lookupWord","word":"hello"}`)

		data := env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s"}`, id))
		view := data.(protocol.ListWordsData)
		require.Len(t, view.Words, 2)

		hello := view.Words[0]
		require.NotNil(t, hello.Dictionary)
		assert.Equal(t, "hello", hello.Dictionary.Word)
		assert.Equal(t, 120, hello.Dictionary.FrequencyRank)
		require.Len(t, hello.Dictionary.Definitions, 1)
		assert.Equal(t, "used as a greeting", hello.Dictionary.Definitions[0].Meaning)

		require.Contains(t, view.LookupStats, "hello")
		assert.Equal(t, 2, view.LookupStats["hello"].Count)
		assert.False(t, view.LookupStats["hello"].FirstLookup.IsZero())
		assert.False(t, view.LookupStats["hello"].LastLookup.IsZero())
		assert.NotContains(t, view.LookupStats, "serendipity", "never looked up")
	})

	t.Run("search narrows the view", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"help"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"serendipity"}`, id))

		data := env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s","search":"greeting"}`, id))
		byMeaning := data.(protocol.ListWordsData)
		require.Len(t, byMeaning.Words, 1)
		assert.Equal(t, "hello", byMeaning.Words[0].Word)

		data = env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s","search":"seren"}`, id))
		byText := data.(protocol.ListWordsData)
		require.Len(t, byText.Words, 1)
		assert.Equal(t, "serendipity", byText.Words[0].Word)
	})

	t.Run("statistics summarize the whole list even when filtered", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"help"}`, id))
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"serendipity"}`, id))

		data := env.handleOK(t, fmt.Sprintf(`{"action":"fetchVocabularyListWords","listId":"%s","filterBy":"easy"}`, id))
		view := data.(protocol.ListWordsData)
		require.Len(t, view.Words, 2)
		assert.Equal(t, 3, view.Statistics.TotalWords)
		assert.Equal(t, 2, view.Statistics.ByDifficulty["easy"])
		assert.Equal(t, 1, view.Statistics.ByDifficulty["hard"])
		assert.Zero(t, view.Statistics.DueWords, "new words are due a day later")
	})
}

func TestDispatcher_SubmitReview(t *testing.T) {
	t.Run("first known review schedules three days out", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))

		raw := fmt.Sprintf(`{"action":"submitReview","listId":"%s","word":"hello","reviewResult":"known","timeSpent":4200}`, id)
		data := env.handleOK(t, raw)

		result, ok := data.(protocol.SubmitReviewData)
		require.True(t, ok)
		require.NotNil(t, result.NextInterval)
		assert.Equal(t, 3, *result.NextInterval)
		assert.Equal(t, env.now.AddDate(0, 0, 3), result.NextReview)
		require.Len(t, result.Word.ReviewHistory, 1)
		assert.Equal(t, "known", result.Word.ReviewHistory[0].Result)
		assert.Equal(t, int64(4200), result.Word.ReviewHistory[0].TimeSpent)
		assert.Equal(t, 1, env.words.reviews)
	})

	t.Run("mastered omits the next interval", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")
		env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))

		raw := fmt.Sprintf(`{"action":"submitReview","listId":"%s","word":"hello","reviewResult":"mastered"}`, id)
		data := env.handleOK(t, raw)

		result := data.(protocol.SubmitReviewData)
		assert.Nil(t, result.NextInterval)
		assert.Equal(t, 9999, result.NextReview.Year())
	})

	t.Run("invalid result is rejected before the handler", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createList(t, "travel")

		raw := fmt.Sprintf(`{"action":"submitReview","listId":"%s","word":"hello","reviewResult":"forgot"}`, id)
		response := env.handle(t, raw)

		assert.False(t, response.Success)
		assert.Contains(t, response.Error, "Invalid request: ")
	})
}

func TestDispatcher_ReviewQueue(t *testing.T) {
	env := newTestEnv(t)
	id := env.createList(t, "travel")
	env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"hello"}`, id))
	env.handleOK(t, fmt.Sprintf(`{"action":"addWordToVocabularyList","listId":"%s","word":"help"}`, id))

	// Words become due 24h after being added.
	env.now = env.now.AddDate(0, 0, 2)

	data := env.handleOK(t, `{"action":"fetchReviewQueue"}`)
	queue, ok := data.(protocol.ReviewQueueData)
	require.True(t, ok)
	require.Len(t, queue.Words, 2)
	assert.Equal(t, id, queue.Words[0].ListID)
	assert.Equal(t, "travel", queue.Words[0].ListName)

	data = env.handleOK(t, `{"action":"fetchReviewQueue","maxWords":1}`)
	capped := data.(protocol.ReviewQueueData)
	assert.Len(t, capped.Words, 1)
}

func TestDispatcher_RecentSearches(t *testing.T) {
	t.Run("history is capped at ten, most recent first", func(t *testing.T) {
		env := newTestEnv(t)

		for i := 1; i <= 12; i++ {
			env.handleOK(t, fmt.Sprintf(`{"action":"addRecentSearch","word":"word%02d"}`, i))
		}

		data := env.handleOK(t, `{"action":"fetchRecentSearches"}`)
		recent, ok := data.(protocol.RecentSearchesData)
		require.True(t, ok)
		require.Len(t, recent.Words, store.RecentSearchCap)
		assert.Equal(t, "word12", recent.Words[0])
		assert.Equal(t, "word03", recent.Words[9])
		assert.NotContains(t, recent.Words, "word01")
		assert.NotContains(t, recent.Words, "word02")
	})

	t.Run("limit trims the result", func(t *testing.T) {
		env := newTestEnv(t)
		env.handleOK(t, `{"action":"addRecentSearch","word":"alpha"}`)
		env.handleOK(t, `{"action":"addRecentSearch","word":"beta"}`)

		data := env.handleOK(t, `{"action":"fetchRecentSearches","limit":1}`)
		recent := data.(protocol.RecentSearchesData)
		assert.Equal(t, []string{"beta"}, recent.Words)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		env := newTestEnv(t)

		data := env.handleOK(t, `{"action":"fetchRecentSearches"}`)
		recent := data.(protocol.RecentSearchesData)
		assert.NotNil(t, recent.Words)
		assert.Empty(t, recent.Words)
	})
}

func TestDispatcher_Settings(t *testing.T) {
	env := newTestEnv(t)

	data := env.handleOK(t, `{"action":"fetchSettings"}`)
	settings, ok := data.(protocol.SettingsPayload)
	require.True(t, ok)
	assert.Equal(t, "system", settings.Theme)
	assert.Equal(t, "doubleClick", settings.TextSelectionMode)
	assert.True(t, settings.ShowExampleSentences)

	data = env.handleOK(t, `{"action":"updateSettings","settings":{"theme":"dark","autoAddLookups":true}}`)
	updated := data.(protocol.SettingsPayload)
	assert.Equal(t, "dark", updated.Theme)
	assert.True(t, updated.AutoAddLookups)
	assert.Equal(t, "doubleClick", updated.TextSelectionMode, "untouched fields keep their values")

	response := env.handle(t, `{"action":"updateSettings","settings":{"theme":"neon"}}`)
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "Invalid request: ")
}

func TestDispatcher_LookupCounts(t *testing.T) {
	env := newTestEnv(t)

	data := env.handleOK(t, `{"action":"incrementLookupCount","word":" Hello "}`)
	count, ok := data.(protocol.LookupCountData)
	require.True(t, ok)
	assert.Equal(t, "hello", count.Word)
	assert.Equal(t, 1, count.Count)

	env.handleOK(t, `{"action":"incrementLookupCount","word":"hello"}`)

	data = env.handleOK(t, `{"action":"fetchLookupCount","word":"HELLO"}`)
	count = data.(protocol.LookupCountData)
	assert.Equal(t, 2, count.Count)

	data = env.handleOK(t, `{"action":"fetchLookupStats"}`)
	stats, ok := data.(protocol.LookupStatsData)
	require.True(t, ok)
	require.Contains(t, stats.Stats, "hello")
	assert.Equal(t, 2, stats.Stats["hello"].Count)
}

func TestDispatcher_StoreFailures(t *testing.T) {
	t.Run("list store failure surfaces as an error envelope", func(t *testing.T) {
		env := newTestEnv(t)
		env.lists.err = errors.New("database is locked")

		response := env.handle(t, `{"action":"fetchAllVocabularyLists"}`)

		assert.False(t, response.Success)
		assert.Equal(t, "database is locked", response.Error)
	})

	t.Run("search store failure fails addRecentSearch", func(t *testing.T) {
		env := newTestEnv(t)
		env.searches.err = errors.New("disk full")

		response := env.handle(t, `{"action":"addRecentSearch","word":"hello"}`)

		assert.False(t, response.Success)
		assert.Equal(t, "disk full", response.Error)
	})
}

func TestDispatcher_PanicRecovery(t *testing.T) {
	env := newTestEnv(t)
	env.dispatcher.handlers[protocol.ActionFetchSettings] = func(context.Context, any) (any, error) {
		panic("boom")
	}

	response := env.handle(t, `{"action":"fetchSettings"}`)

	assert.False(t, response.Success)
	assert.Equal(t, "internal error: boom", response.Error)
}

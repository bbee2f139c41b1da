package vocabulary

import (
	"time"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/review"
)

// initialReviewDelay is how long after adding a word its first review
// becomes due.
const initialReviewDelay = 24 * time.Hour

// Metadata carries the optional caller-supplied fields of a new word.
type Metadata struct {
	Difficulty  *int
	CustomNotes string
}

// Updates carries the mutable fields of an existing word. Only difficulty
// and custom notes may change after creation.
type Updates struct {
	Difficulty  *int
	CustomNotes *string
}

// Collection wraps one list with the dictionary it draws entries from.
type Collection struct {
	list *List
	dict *dictionary.Service
}

// NewCollection creates a Collection over list.
func NewCollection(list *List, dict *dictionary.Service) *Collection {
	if list.Words == nil {
		list.Words = make(map[string]*WordEntry)
	}
	return &Collection{list: list, dict: dict}
}

// List returns the underlying list.
func (c *Collection) List() *List {
	return c.list
}

// AddWord adds a dictionary word to the list. The dictionary is the source
// of truth for the canonical word text; a word it does not contain cannot
// be added. Adding a word whose normalized key is already present fails
// without overwriting the existing entry.
func (c *Collection) AddWord(word string, meta Metadata, now time.Time) (*WordEntry, error) {
	key := NormalizeWord(word)
	if _, ok := c.list.Words[key]; ok {
		return nil, apperr.Duplicate("word %q is already in list %q", key, c.list.Name)
	}

	dictEntry := c.dict.Get(key)
	if dictEntry == nil {
		return nil, apperr.NotFound("word %q is not in the dictionary", key)
	}

	difficulty := dictEntry.FrequencyRank
	if meta.Difficulty != nil {
		difficulty = *meta.Difficulty
	}

	entry := &WordEntry{
		Word:          dictEntry.Word,
		DateAdded:     now,
		Difficulty:    difficulty,
		CustomNotes:   meta.CustomNotes,
		NextReview:    now.Add(initialReviewDelay),
		ReviewHistory: []ReviewRecord{},
	}
	c.list.Words[key] = entry
	return entry, nil
}

// UpdateWord applies updates to an existing word. Fields outside the
// whitelist (difficulty, custom notes) never change.
func (c *Collection) UpdateWord(word string, updates Updates) (*WordEntry, error) {
	entry, ok := c.list.Words[NormalizeWord(word)]
	if !ok {
		return nil, apperr.NotFound("word %q is not in list %q", NormalizeWord(word), c.list.Name)
	}

	if updates.Difficulty != nil {
		entry.Difficulty = *updates.Difficulty
	}
	if updates.CustomNotes != nil {
		entry.CustomNotes = *updates.CustomNotes
	}
	return entry, nil
}

// Find returns the entry for word, or nil when the list does not contain it.
func (c *Collection) Find(word string) *WordEntry {
	return c.list.Words[NormalizeWord(word)]
}

// Words returns the list's entries in unspecified order.
func (c *Collection) Words() []*WordEntry {
	entries := make([]*WordEntry, 0, len(c.list.Words))
	for _, entry := range c.list.Words {
		entries = append(entries, entry)
	}
	return entries
}

// SubmitReview records one review outcome for word: it recomputes the
// review cadence, stamps the review time and appends to the word's
// append-only history. A mastered result parks the word at the far-future
// sentinel instead of clearing next review.
//
// The returned interval is nil when the word left the active rotation.
func (c *Collection) SubmitReview(word string, result review.Result, timeSpent int64, now time.Time) (*WordEntry, *int, error) {
	entry, ok := c.list.Words[NormalizeWord(word)]
	if !ok {
		return nil, nil, apperr.NotFound("word %q is not in list %q", NormalizeWord(word), c.list.Name)
	}

	currentInterval := review.CurrentInterval(entry.LastReviewed, now)
	nextInterval, active := review.NextInterval(currentInterval, result)

	reviewedAt := now
	entry.LastReviewed = &reviewedAt
	if active {
		entry.NextReview = review.NextReviewDate(nextInterval, now)
	} else {
		entry.NextReview = review.FarFuture
	}
	entry.ReviewHistory = append(entry.ReviewHistory, ReviewRecord{
		Date:      now,
		Result:    result,
		TimeSpent: timeSpent,
	})

	if !active {
		return entry, nil, nil
	}
	return entry, &nextInterval, nil
}

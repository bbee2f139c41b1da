// Package vocabulary implements word lists and their query engine.
package vocabulary

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aomurata/wordbridge/internal/review"
)

// Difficulty bucket thresholds over the word frequency rank.
// A smaller rank means a more common, easier word.
const (
	EasyMaxRank   = 3000
	MediumMaxRank = 9999
)

// DifficultyBucket labels a frequency rank range.
type DifficultyBucket string

const (
	BucketEasy   DifficultyBucket = "easy"
	BucketMedium DifficultyBucket = "medium"
	BucketHard   DifficultyBucket = "hard"
)

// BucketForRank maps a frequency rank to its difficulty bucket.
func BucketForRank(rank int) DifficultyBucket {
	switch {
	case rank <= EasyMaxRank:
		return BucketEasy
	case rank <= MediumMaxRank:
		return BucketMedium
	default:
		return BucketHard
	}
}

// NormalizeWord produces the map key for a word: trimmed and lowercased.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// ReviewRecord is one entry of a word's append-only review history.
type ReviewRecord struct {
	Date      time.Time     `json:"date"`
	Result    review.Result `json:"result"`
	TimeSpent int64         `json:"timeSpent"`
}

// WordEntry is one word inside a list, keyed by its normalized form.
type WordEntry struct {
	Word          string         `json:"word"`
	DateAdded     time.Time      `json:"dateAdded"`
	Difficulty    int            `json:"difficulty"`
	CustomNotes   string         `json:"customNotes"`
	LastReviewed  *time.Time     `json:"lastReviewed,omitempty"`
	NextReview    time.Time      `json:"nextReview"`
	ReviewHistory []ReviewRecord `json:"reviewHistory"`
}

// List is one vocabulary list. Words maps normalized word keys to entries;
// a key appears at most once per list.
type List struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	CreatedAt time.Time             `json:"createdAt"`
	IsDefault bool                  `json:"isDefault"`
	Words     map[string]*WordEntry `json:"words"`
}

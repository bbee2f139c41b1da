package vocabulary

import (
	"sort"
	"strings"
	"time"

	"github.com/aomurata/wordbridge/internal/dictionary"
)

// SortCriteria selects the sort key for a list view.
type SortCriteria string

const (
	SortAlphabetical SortCriteria = "alphabetical"
	SortDateAdded    SortCriteria = "dateAdded"
	SortLastReviewed SortCriteria = "lastReviewed"
	SortDifficulty   SortCriteria = "difficulty"
	SortLookupCount  SortCriteria = "lookupCount"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortWords orders entries in place. lookupCounts supplies the sort key for
// SortLookupCount, defaulting to 0 for words never looked up.
//
// For SortLastReviewed, entries never reviewed always sink below every
// reviewed entry regardless of direction.
func SortWords(entries []*WordEntry, criteria SortCriteria, order SortOrder, lookupCounts map[string]int) {
	desc := order == OrderDesc

	less := func(i, j *WordEntry) bool { return false }
	switch criteria {
	case SortAlphabetical:
		less = func(i, j *WordEntry) bool {
			return strings.ToLower(i.Word) < strings.ToLower(j.Word)
		}
	case SortDateAdded:
		less = func(i, j *WordEntry) bool { return i.DateAdded.Before(j.DateAdded) }
	case SortDifficulty:
		less = func(i, j *WordEntry) bool { return i.Difficulty < j.Difficulty }
	case SortLookupCount:
		less = func(i, j *WordEntry) bool {
			return lookupCounts[NormalizeWord(i.Word)] < lookupCounts[NormalizeWord(j.Word)]
		}
	case SortLastReviewed:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			switch {
			case a.LastReviewed == nil && b.LastReviewed == nil:
				return false
			case a.LastReviewed == nil:
				return false
			case b.LastReviewed == nil:
				return true
			}
			if desc {
				return a.LastReviewed.After(*b.LastReviewed)
			}
			return a.LastReviewed.Before(*b.LastReviewed)
		})
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

// FilterByDifficulty keeps entries in the named difficulty bucket.
// "all" or an empty filter passes everything through.
func FilterByDifficulty(entries []*WordEntry, bucket string) []*WordEntry {
	if bucket == "" || bucket == "all" {
		return entries
	}
	filtered := make([]*WordEntry, 0, len(entries))
	for _, entry := range entries {
		if BucketForRank(entry.Difficulty) == DifficultyBucket(bucket) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// SearchWords keeps entries whose word text, dictionary meanings or
// examples, or custom notes contain the query, case-insensitively.
// An empty query matches everything.
func SearchWords(entries []*WordEntry, query string, dict *dictionary.Service) []*WordEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	matched := make([]*WordEntry, 0, len(entries))
	for _, entry := range entries {
		if matchesQuery(entry, q, dict) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func matchesQuery(entry *WordEntry, q string, dict *dictionary.Service) bool {
	if strings.Contains(strings.ToLower(entry.Word), q) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.CustomNotes), q) {
		return true
	}
	dictEntry := dict.Get(entry.Word)
	if dictEntry == nil {
		return false
	}
	for _, def := range dictEntry.Definitions {
		if strings.Contains(strings.ToLower(def.Meaning), q) {
			return true
		}
		for _, example := range def.Examples {
			if strings.Contains(strings.ToLower(example), q) {
				return true
			}
		}
	}
	return false
}

// Statistics aggregates one list's entries for the summary view.
type Statistics struct {
	TotalWords   int            `json:"totalWords"`
	ByDifficulty map[string]int `json:"byDifficulty"`
	TotalReviews int            `json:"totalReviews"`
	DueWords     int            `json:"dueWords"`
}

// ComputeStatistics counts entries per difficulty bucket, total reviews
// across all histories, and words currently due.
func ComputeStatistics(entries []*WordEntry, now time.Time) Statistics {
	stats := Statistics{
		TotalWords: len(entries),
		ByDifficulty: map[string]int{
			string(BucketEasy):   0,
			string(BucketMedium): 0,
			string(BucketHard):   0,
		},
	}
	for _, entry := range entries {
		stats.ByDifficulty[string(BucketForRank(entry.Difficulty))]++
		stats.TotalReviews += len(entry.ReviewHistory)
		if !entry.NextReview.After(now) {
			stats.DueWords++
		}
	}
	return stats
}

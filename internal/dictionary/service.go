package dictionary

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"
)

// maxEditDistance bounds fuzzy suggestions regardless of query length.
const maxEditDistance = 3

// StatsRepository defines operations for managing per-word lookup statistics.
type StatsRepository interface {
	Find(ctx context.Context, word string) (*LookupStats, error)
	FindAll(ctx context.Context) ([]LookupStats, error)
	// Record creates the word's stats on first use and increments the
	// lookup count and last-lookup time thereafter.
	Record(ctx context.Context, word string, at time.Time) error
}

// Service answers word lookups against an in-memory dictionary loaded once
// at startup. Lookups are case-insensitive and tracked in StatsRepository.
type Service struct {
	entries map[string]Entry
	// order preserves dictionary load order so fuzzy-match ties are
	// broken deterministically.
	order  []string
	stats  StatsRepository
	logger zerolog.Logger
}

// NewService builds a Service from loaded entries. Entries are keyed by
// their normalized word; a later duplicate of the same word is ignored.
func NewService(entries []Entry, stats StatsRepository, logger zerolog.Logger) *Service {
	s := &Service{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
		stats:   stats,
		logger:  logger,
	}
	for _, e := range entries {
		key := normalize(e.Word)
		if key == "" {
			continue
		}
		if _, ok := s.entries[key]; ok {
			continue
		}
		s.entries[key] = e
		s.order = append(s.order, key)
	}
	return s
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Size returns the number of dictionary entries.
func (s *Service) Size() int {
	return len(s.entries)
}

// Lookup returns the entry for word, or nil when the dictionary does not
// contain it. A hit is counted in the word's lookup statistics; a
// statistics failure never fails the lookup itself.
func (s *Service) Lookup(ctx context.Context, word string) *Entry {
	key := normalize(word)
	if key == "" {
		return nil
	}

	entry, ok := s.entries[key]
	if !ok {
		return nil
	}

	if err := s.stats.Record(ctx, key, time.Now()); err != nil {
		s.logger.Warn().Err(err).Str("word", key).Msg("failed to record lookup stats")
	}
	return &entry
}

// Contains reports whether the dictionary has an entry for word without
// touching lookup statistics.
func (s *Service) Contains(word string) bool {
	_, ok := s.entries[normalize(word)]
	return ok
}

// Get returns the entry for word without touching lookup statistics.
func (s *Service) Get(word string) *Entry {
	entry, ok := s.entries[normalize(word)]
	if !ok {
		return nil
	}
	return &entry
}

// FuzzyMatch returns up to maxSuggestions dictionary words within edit
// distance (0, min(3, half the query's rune count)] of the query, closest
// first. Ties keep dictionary load order. Used for "did you mean" when an
// exact lookup fails.
func (s *Service) FuzzyMatch(word string, maxSuggestions int) []string {
	query := normalize(word)
	if query == "" || maxSuggestions <= 0 {
		return nil
	}

	// ComputeDistance counts runes, so the budget must too.
	allowed := utf8.RuneCountInString(query) / 2
	if allowed > maxEditDistance {
		allowed = maxEditDistance
	}
	if allowed == 0 {
		return nil
	}

	type candidate struct {
		word     string
		distance int
	}
	var candidates []candidate
	for _, key := range s.order {
		d := levenshtein.ComputeDistance(query, key)
		if d > 0 && d <= allowed {
			candidates = append(candidates, candidate{word: s.entries[key].Word, distance: d})
		}
	}

	// Stable sort keeps dictionary load order within each distance.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.word
	}
	return suggestions
}

// LookupCount returns how many times word has been looked up, 0 when never.
func (s *Service) LookupCount(ctx context.Context, word string) (int, error) {
	key := normalize(word)
	if key == "" {
		return 0, nil
	}
	stats, err := s.stats.Find(ctx, key)
	if err != nil {
		return 0, err
	}
	if stats == nil {
		return 0, nil
	}
	return stats.Count, nil
}

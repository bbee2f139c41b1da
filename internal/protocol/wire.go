package protocol

import (
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/review"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

// Converters from domain values to wire payloads. Every handler goes
// through these so the same entity always serializes identically.

// DictionaryEntryToWire maps a dictionary entry to its wire form.
func DictionaryEntryToWire(entry *dictionary.Entry) *DictionaryEntryPayload {
	if entry == nil {
		return nil
	}
	definitions := make([]DefinitionPayload, len(entry.Definitions))
	for i, def := range entry.Definitions {
		definitions[i] = DefinitionPayload{
			PartOfSpeech: def.PartOfSpeech,
			Meaning:      def.Meaning,
			Examples:     def.Examples,
		}
	}
	return &DictionaryEntryPayload{
		Word:          entry.Word,
		Pronunciation: entry.Pronunciation,
		FrequencyRank: entry.FrequencyRank,
		Definitions:   definitions,
		Synonyms:      entry.Synonyms,
		Antonyms:      entry.Antonyms,
	}
}

// WordEntryToWire maps a list word to its wire form.
func WordEntryToWire(entry *vocabulary.WordEntry) WordEntryPayload {
	history := make([]ReviewRecordPayload, len(entry.ReviewHistory))
	for i, record := range entry.ReviewHistory {
		history[i] = ReviewRecordPayload{
			Date:      record.Date,
			Result:    string(record.Result),
			TimeSpent: record.TimeSpent,
		}
	}
	return WordEntryPayload{
		Word:          entry.Word,
		DateAdded:     entry.DateAdded,
		Difficulty:    entry.Difficulty,
		CustomNotes:   entry.CustomNotes,
		LastReviewed:  entry.LastReviewed,
		NextReview:    entry.NextReview,
		ReviewHistory: history,
	}
}

// ListToWire maps a vocabulary list, words included, to its wire form.
func ListToWire(list *vocabulary.List) ListPayload {
	words := make(map[string]WordEntryPayload, len(list.Words))
	for key, entry := range list.Words {
		words[key] = WordEntryToWire(entry)
	}
	return ListPayload{
		ID:        list.ID.String(),
		Name:      list.Name,
		CreatedAt: list.CreatedAt,
		IsDefault: list.IsDefault,
		Words:     words,
	}
}

// DueWordToWire maps a review queue item to its wire form.
func DueWordToWire(due review.DueWord) DueWordPayload {
	return DueWordPayload{
		Word:       due.Word,
		ListID:     due.ListID,
		ListName:   due.ListName,
		NextReview: due.NextReview,
		Difficulty: due.Difficulty,
	}
}

// LookupStatsEntryToWire maps one word's lookup statistics to their wire form.
func LookupStatsEntryToWire(stats dictionary.LookupStats) LookupStatsPayload {
	return LookupStatsPayload{
		Count:       stats.Count,
		FirstLookup: stats.FirstLookup,
		LastLookup:  stats.LastLookup,
	}
}

// LookupStatsToWire maps lookup statistics to their wire form.
func LookupStatsToWire(stats []dictionary.LookupStats) LookupStatsData {
	out := make(map[string]LookupStatsPayload, len(stats))
	for _, s := range stats {
		out[s.Word] = LookupStatsEntryToWire(s)
	}
	return LookupStatsData{Stats: out}
}

// StatisticsToWire maps a list summary to its wire form.
func StatisticsToWire(stats vocabulary.Statistics) ListStatisticsPayload {
	return ListStatisticsPayload{
		TotalWords:   stats.TotalWords,
		ByDifficulty: stats.ByDifficulty,
		TotalReviews: stats.TotalReviews,
		DueWords:     stats.DueWords,
	}
}

// Package dictionary provides the read-only word dictionary, per-word
// lookup statistics and fuzzy suggestion search.
package dictionary

import "time"

// Definition is one sense of a word. Definitions are ordered by usage
// frequency, most common first.
type Definition struct {
	PartOfSpeech string   `yaml:"part_of_speech" json:"partOfSpeech"`
	Meaning      string   `yaml:"meaning" json:"meaning"`
	Examples     []string `yaml:"examples" json:"examples"`
}

// Entry is one immutable dictionary entry, keyed by the lowercase word.
type Entry struct {
	Word          string       `yaml:"word" json:"word"`
	Pronunciation string       `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
	FrequencyRank int          `yaml:"frequency_rank" json:"frequencyRank"`
	Definitions   []Definition `yaml:"definitions" json:"definitions"`
	Synonyms      []string     `yaml:"synonyms" json:"synonyms"`
	Antonyms      []string     `yaml:"antonyms" json:"antonyms"`
}

// LookupStats tracks how often one word has been looked up, independent
// of any list. Created on first lookup, never deleted.
type LookupStats struct {
	Word        string    `json:"word"`
	Count       int       `json:"count"`
	FirstLookup time.Time `json:"firstLookup"`
	LastLookup  time.Time `json:"lastLookup"`
}

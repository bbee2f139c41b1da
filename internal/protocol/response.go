package protocol

import "time"

// Response is the envelope every command resolves to. Success with data,
// or failure with a message; never both.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail wraps an error message in a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Error: message}
}

// DefinitionPayload is one dictionary sense on the wire.
type DefinitionPayload struct {
	PartOfSpeech string   `json:"partOfSpeech" validate:"required"`
	Meaning      string   `json:"meaning" validate:"required"`
	Examples     []string `json:"examples"`
}

// DictionaryEntryPayload is a dictionary entry on the wire.
type DictionaryEntryPayload struct {
	Word          string              `json:"word" validate:"required"`
	Pronunciation string              `json:"pronunciation,omitempty"`
	FrequencyRank int                 `json:"frequencyRank" validate:"min=0"`
	Definitions   []DefinitionPayload `json:"definitions" validate:"required,min=1,dive"`
	Synonyms      []string            `json:"synonyms"`
	Antonyms      []string            `json:"antonyms"`
}

// LookupWordData answers a lookup: the entry when the dictionary has the
// word, otherwise fuzzy suggestions for the extension's "did you mean".
type LookupWordData struct {
	Found       bool                    `json:"found"`
	Entry       *DictionaryEntryPayload `json:"entry,omitempty" validate:"required_if=Found true,omitempty"`
	Suggestions []string                `json:"suggestions,omitempty"`
}

// ReviewRecordPayload is one review history entry on the wire.
type ReviewRecordPayload struct {
	Date      time.Time `json:"date" validate:"required"`
	Result    string    `json:"result" validate:"required,oneof=known unknown mastered skipped"`
	TimeSpent int64     `json:"timeSpent" validate:"min=0"`
}

// WordEntryPayload is a list word on the wire. Dictionary carries the
// upstream entry when the view merges it in for display; single-word
// answers leave it empty.
type WordEntryPayload struct {
	Word          string                  `json:"word" validate:"required"`
	DateAdded     time.Time               `json:"dateAdded" validate:"required"`
	Difficulty    int                     `json:"difficulty" validate:"min=0"`
	CustomNotes   string                  `json:"customNotes"`
	LastReviewed  *time.Time              `json:"lastReviewed,omitempty"`
	NextReview    time.Time               `json:"nextReview" validate:"required"`
	ReviewHistory []ReviewRecordPayload   `json:"reviewHistory" validate:"dive"`
	Dictionary    *DictionaryEntryPayload `json:"dictionary,omitempty"`
}

// ListPayload is a vocabulary list on the wire.
type ListPayload struct {
	ID        string                      `json:"id" validate:"required,uuid"`
	Name      string                      `json:"name" validate:"required"`
	CreatedAt time.Time                   `json:"createdAt" validate:"required"`
	IsDefault bool                        `json:"isDefault"`
	Words     map[string]WordEntryPayload `json:"words" validate:"dive"`
}

// ListStatisticsPayload is one list's summary numbers on the wire.
type ListStatisticsPayload struct {
	TotalWords   int            `json:"totalWords" validate:"min=0"`
	ByDifficulty map[string]int `json:"byDifficulty" validate:"required"`
	TotalReviews int            `json:"totalReviews" validate:"min=0"`
	DueWords     int            `json:"dueWords" validate:"min=0"`
}

// ListWordsData answers a filtered, sorted list view. Each word carries
// its merged dictionary entry, LookupStats holds the statistics of every
// word in the view that has been looked up, and Statistics summarizes the
// whole list before filtering.
type ListWordsData struct {
	Words       []WordEntryPayload            `json:"words" validate:"dive"`
	LookupStats map[string]LookupStatsPayload `json:"lookupStats" validate:"dive"`
	Statistics  ListStatisticsPayload         `json:"statistics"`
}

// SubmitReviewData answers a recorded review. NextInterval is absent when
// the word was mastered out of the rotation.
type SubmitReviewData struct {
	NextInterval *int             `json:"nextInterval,omitempty" validate:"omitempty,min=1"`
	NextReview   time.Time        `json:"nextReview" validate:"required"`
	Word         WordEntryPayload `json:"word" validate:"required"`
}

// DueWordPayload is one review queue item on the wire.
type DueWordPayload struct {
	Word       string    `json:"word" validate:"required"`
	ListID     string    `json:"listId" validate:"required,uuid"`
	ListName   string    `json:"listName" validate:"required"`
	NextReview time.Time `json:"nextReview" validate:"required"`
	Difficulty int       `json:"difficulty" validate:"min=0"`
}

// ReviewQueueData answers the cross-list due queue, most overdue first.
type ReviewQueueData struct {
	Words []DueWordPayload `json:"words" validate:"dive"`
}

// RecentSearchesData answers the recent search history, most recent first.
type RecentSearchesData struct {
	Words []string `json:"words"`
}

// SettingsPayload is the settings record on the wire.
type SettingsPayload struct {
	Theme                 string `json:"theme" validate:"required,oneof=light dark system"`
	AutoPlayPronunciation bool   `json:"autoPlayPronunciation"`
	ShowExampleSentences  bool   `json:"showExampleSentences"`
	TextSelectionMode     string `json:"textSelectionMode" validate:"required,oneof=disabled doubleClick selection"`
	AutoAddLookups        bool   `json:"autoAddLookups"`
}

// LookupCountData answers a single word's lookup count.
type LookupCountData struct {
	Word  string `json:"word"`
	Count int    `json:"count" validate:"min=0"`
}

// LookupStatsPayload is one word's lookup statistics on the wire.
type LookupStatsPayload struct {
	Count       int       `json:"count" validate:"min=1"`
	FirstLookup time.Time `json:"firstLookup" validate:"required"`
	LastLookup  time.Time `json:"lastLookup" validate:"required"`
}

// LookupStatsData answers the full lookup statistics map.
type LookupStatsData struct {
	Stats map[string]LookupStatsPayload `json:"stats" validate:"dive"`
}

// ListsData answers the full set of vocabulary lists.
type ListsData struct {
	Lists []ListPayload `json:"lists" validate:"dive"`
}

// WordEntryData answers a single created or updated word.
type WordEntryData struct {
	Word WordEntryPayload `json:"word" validate:"required"`
}

// EmptyData is the success payload for actions with nothing to return.
type EmptyData struct{}

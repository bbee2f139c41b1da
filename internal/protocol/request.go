package protocol

// Request structs are the typed forms of inbound messages. Every struct
// carries the action discriminator so strict decoding accepts the envelope
// as-is; field optionality and enum ranges live in the validate tags.

// WordMetadata is the optional payload of a new word.
type WordMetadata struct {
	Difficulty  *int   `json:"difficulty,omitempty" validate:"omitempty,min=0"`
	CustomNotes string `json:"customNotes,omitempty"`
}

// WordUpdates is the whitelisted mutable fields of an existing word.
type WordUpdates struct {
	Difficulty  *int    `json:"difficulty,omitempty" validate:"omitempty,min=0"`
	CustomNotes *string `json:"customNotes,omitempty"`
}

// SettingsPatch is a partial settings update; nil fields keep their value.
type SettingsPatch struct {
	Theme                 *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	AutoPlayPronunciation *bool   `json:"autoPlayPronunciation,omitempty"`
	ShowExampleSentences  *bool   `json:"showExampleSentences,omitempty"`
	TextSelectionMode     *string `json:"textSelectionMode,omitempty" validate:"omitempty,oneof=disabled doubleClick selection"`
	AutoAddLookups        *bool   `json:"autoAddLookups,omitempty"`
}

type LookupWordRequest struct {
	Action string `json:"action" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

type AddWordRequest struct {
	Action   string        `json:"action" validate:"required"`
	ListID   string        `json:"listId" validate:"required"`
	Word     string        `json:"word" validate:"required"`
	Metadata *WordMetadata `json:"metadata,omitempty"`
}

type CreateListRequest struct {
	Action    string `json:"action" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

type FetchAllListsRequest struct {
	Action string `json:"action" validate:"required"`
}

type FetchListWordsRequest struct {
	Action    string `json:"action" validate:"required"`
	ListID    string `json:"listId" validate:"required"`
	FilterBy  string `json:"filterBy,omitempty" validate:"omitempty,oneof=all easy medium hard"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sortBy,omitempty" validate:"omitempty,oneof=alphabetical dateAdded lastReviewed difficulty lookupCount"`
	SortOrder string `json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc"`
}

type UpdateWordRequest struct {
	Action  string      `json:"action" validate:"required"`
	ListID  string      `json:"listId" validate:"required"`
	Word    string      `json:"word" validate:"required"`
	Updates WordUpdates `json:"updates"`
}

type SubmitReviewRequest struct {
	Action       string `json:"action" validate:"required"`
	ListID       string `json:"listId" validate:"required"`
	Word         string `json:"word" validate:"required"`
	ReviewResult string `json:"reviewResult" validate:"required,oneof=known unknown mastered skipped"`
	TimeSpent    int64  `json:"timeSpent,omitempty" validate:"omitempty,min=0"`
}

type FetchReviewQueueRequest struct {
	Action   string `json:"action" validate:"required"`
	MaxWords int    `json:"maxWords,omitempty" validate:"omitempty,min=1"`
}

type AddRecentSearchRequest struct {
	Action string `json:"action" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

type FetchRecentSearchesRequest struct {
	Action string `json:"action" validate:"required"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1"`
}

type FetchSettingsRequest struct {
	Action string `json:"action" validate:"required"`
}

type UpdateSettingsRequest struct {
	Action   string        `json:"action" validate:"required"`
	Settings SettingsPatch `json:"settings"`
}

type IncrementLookupCountRequest struct {
	Action string `json:"action" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

type FetchLookupCountRequest struct {
	Action string `json:"action" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

type FetchLookupStatsRequest struct {
	Action string `json:"action" validate:"required"`
}

// newRequest returns the empty typed request for action, or nil for an
// unknown action.
func newRequest(action Action) any {
	switch action {
	case ActionLookupWord:
		return &LookupWordRequest{}
	case ActionAddWord:
		return &AddWordRequest{}
	case ActionCreateList:
		return &CreateListRequest{}
	case ActionFetchAllLists:
		return &FetchAllListsRequest{}
	case ActionFetchListWords:
		return &FetchListWordsRequest{}
	case ActionUpdateWord:
		return &UpdateWordRequest{}
	case ActionSubmitReview:
		return &SubmitReviewRequest{}
	case ActionFetchReviewQueue:
		return &FetchReviewQueueRequest{}
	case ActionAddRecentSearch:
		return &AddRecentSearchRequest{}
	case ActionFetchRecentSearches:
		return &FetchRecentSearchesRequest{}
	case ActionFetchSettings:
		return &FetchSettingsRequest{}
	case ActionUpdateSettings:
		return &UpdateSettingsRequest{}
	case ActionIncrementLookupCount:
		return &IncrementLookupCountRequest{}
	case ActionFetchLookupCount:
		return &FetchLookupCountRequest{}
	case ActionFetchLookupStats:
		return &FetchLookupStatsRequest{}
	}
	return nil
}

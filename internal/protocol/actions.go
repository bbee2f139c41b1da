// Package protocol defines the typed message surface between the browser
// extension and the host, and validates every request and response that
// crosses it.
package protocol

// Action names one operation of the command protocol.
type Action string

const (
	ActionLookupWord           Action = "lookupWord"
	ActionAddWord              Action = "addWordToVocabularyList"
	ActionCreateList           Action = "createVocabularyList"
	ActionFetchAllLists        Action = "fetchAllVocabularyLists"
	ActionFetchListWords       Action = "fetchVocabularyListWords"
	ActionUpdateWord           Action = "updateWord"
	ActionSubmitReview         Action = "submitReview"
	ActionFetchReviewQueue     Action = "fetchReviewQueue"
	ActionAddRecentSearch      Action = "addRecentSearch"
	ActionFetchRecentSearches  Action = "fetchRecentSearches"
	ActionFetchSettings        Action = "fetchSettings"
	ActionUpdateSettings       Action = "updateSettings"
	ActionIncrementLookupCount Action = "incrementLookupCount"
	ActionFetchLookupCount     Action = "fetchLookupCount"
	ActionFetchLookupStats     Action = "fetchLookupStats"
)

// Actions lists every supported action.
func Actions() []Action {
	return []Action{
		ActionLookupWord,
		ActionAddWord,
		ActionCreateList,
		ActionFetchAllLists,
		ActionFetchListWords,
		ActionUpdateWord,
		ActionSubmitReview,
		ActionFetchReviewQueue,
		ActionAddRecentSearch,
		ActionFetchRecentSearches,
		ActionFetchSettings,
		ActionUpdateSettings,
		ActionIncrementLookupCount,
		ActionFetchLookupCount,
		ActionFetchLookupStats,
	}
}

package review

import (
	"sort"
	"time"
)

// DefaultQueueSize caps the review queue when the caller does not ask
// for a specific size.
const DefaultQueueSize = 30

// DueWord is one queue candidate, enriched with its owning list so the
// queue can span every list without knowing about list structure.
type DueWord struct {
	Word       string    `json:"word"`
	ListID     string    `json:"listId"`
	ListName   string    `json:"listName"`
	NextReview time.Time `json:"nextReview"`
	Difficulty int       `json:"difficulty"`
}

// BuildQueue filters candidates to those due at or before now, orders them
// oldest-due first and truncates to maxWords. The ordering guarantees the
// most overdue words surface first under the cap.
func BuildQueue(candidates []DueWord, maxWords int, now time.Time) []DueWord {
	if maxWords <= 0 {
		maxWords = DefaultQueueSize
	}

	due := make([]DueWord, 0, len(candidates))
	for _, c := range candidates {
		if !c.NextReview.After(now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})

	if len(due) > maxWords {
		due = due[:maxWords]
	}
	return due
}

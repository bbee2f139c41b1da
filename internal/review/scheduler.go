// Package review implements the spaced-repetition scheduler.
package review

import (
	"math"
	"time"
)

// Result is the outcome of one review.
type Result string

const (
	ResultKnown    Result = "known"
	ResultUnknown  Result = "unknown"
	ResultMastered Result = "mastered"
	ResultSkipped  Result = "skipped"
)

// Known returns whether r is one of the accepted review results.
func (r Result) Known() bool {
	switch r {
	case ResultKnown, ResultUnknown, ResultMastered, ResultSkipped:
		return true
	}
	return false
}

// FarFuture is the next-review sentinel for mastered words. It keeps the
// field non-optional while pushing the word past any realistic due check.
var FarFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// progression is the interval ladder in days for consecutive known results.
var progression = map[int]int{
	1:  3,
	3:  7,
	7:  14,
	14: 30,
	30: 60,
}

// CurrentInterval returns the effective interval in days since the last
// review. A word never reviewed starts at 1. Elapsed time is rounded up
// and never below 1.
func CurrentInterval(lastReviewed *time.Time, now time.Time) int {
	if lastReviewed == nil {
		return 1
	}
	days := int(math.Ceil(now.Sub(*lastReviewed).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// NextInterval computes the next review interval in days.
// The second return value is false when the word leaves the active
// rotation (mastered).
//
// unknown resets to 1 day, skipped keeps the cadence unchanged, known
// advances along the progression ladder. An interval between ladder
// steps doubles instead, so off-ladder cadences still grow.
func NextInterval(currentInterval int, result Result) (int, bool) {
	switch result {
	case ResultMastered:
		return 0, false
	case ResultUnknown:
		return 1, true
	case ResultSkipped:
		return currentInterval, true
	}
	if next, ok := progression[currentInterval]; ok {
		return next, true
	}
	return currentInterval * 2, true
}

// NextReviewDate returns the review date intervalDays after now.
func NextReviewDate(intervalDays int, now time.Time) time.Time {
	return now.AddDate(0, 0, intervalDays)
}

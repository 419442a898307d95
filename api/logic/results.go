/* results.go
 * Contains the UTC date arithmetic and score ranking used by the daily fixtures and their results
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"time"

	"arena-bot/api/shared"
	"arena-bot/api/store"
)

// DateLayout is the YYYY-MM-DD form used for fixture dates
const DateLayout = "2006-01-02"

// ResultsLimit is how many scores are listed per fixture
const ResultsLimit = 10

// Today returns the UTC calendar date of now
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Yesterday returns the UTC calendar date before now
func Yesterday(now time.Time) string {
	return now.UTC().AddDate(0, 0, -1).Format(DateLayout)
}

// DayWindow returns the first and last millisecond of a UTC date
// Preconditions: Receives a date formatted YYYY-MM-DD
// Postconditions: Returns [00:00:00.000, 23:59:59.999] of that day in UTC, or ErrInvalidDate
func DayWindow(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, shared.ErrInvalidDate
	}
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

// FilterScores keeps the entries of a fixture: same game, inside the window and played by a participant
func FilterScores(scores []store.Score, game store.Game, from time.Time, to time.Time, participants []string) []store.Score {
	allowed := make(map[string]bool, len(participants))
	for _, p := range participants {
		allowed[p] = true
	}

	filtered := make([]store.Score, 0, len(scores))
	for _, s := range scores {
		if s.Game != game || !allowed[s.Player] {
			continue
		}
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// RankScores sorts scores highest first and keeps at most limit entries. Equal scores keep their input order
func RankScores(scores []store.Score, limit int) []store.Score {
	ranked := append([]store.Score(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

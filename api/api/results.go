/* results.go
 * Contains the results aggregator for the daily fixtures
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"

	"arena-bot/api/logic"
	"arena-bot/api/store"
)

// GetResults returns the top scores of every fixture of date
// Preconditions: Receives context and a YYYY-MM-DD date, or an empty string for yesterday (UTC)
// Postconditions: Returns one FixtureResults per fixture of that date in definition order, an empty list when the
// date has no fixtures, or error if it occurs
func (a *API) GetResults(ctx context.Context, date string) ([]FixtureResults, error) {
	if date == "" {
		date = logic.Yesterday(a.Clock.Now())
	}
	from, to, err := logic.DayWindow(date)
	if err != nil {
		return nil, err
	}

	fixtures, err := a.Store.ListDailyTournaments(ctx, date)
	if err != nil {
		return nil, err
	}
	fixtures = orderFixtures(fixtures)

	tops := make([][]store.Score, len(fixtures))
	var players []string
	seen := make(map[string]bool)
	for i, f := range fixtures {
		scores, err := a.Scores.FetchScores(ctx, store.ScoreQuery{
			Game:    f.Game,
			From:    from,
			To:      to,
			Players: f.Participants,
			Limit:   logic.ResultsLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("error fetching scores for %s: %w", f.Slug, err)
		}

		tops[i] = logic.RankScores(scores, logic.ResultsLimit)
		for _, s := range tops[i] {
			if !seen[s.Player] {
				seen[s.Player] = true
				players = append(players, s.Player)
			}
		}
	}

	identities, err := a.identities(ctx, players)
	if err != nil {
		return nil, err
	}

	results := make([]FixtureResults, 0, len(fixtures))
	for i, f := range fixtures {
		top := make([]ResultEntry, 0, len(tops[i]))
		for _, s := range tops[i] {
			identity := identities[s.Player]
			top = append(top, ResultEntry{User: s.Player, Name: identity.Name, Email: identity.Email, Score: s.Score})
		}
		results = append(results, FixtureResults{Date: f.Date, Slug: f.Slug, Title: f.Title, Game: f.Game, Top: top})
	}
	return results, nil
}

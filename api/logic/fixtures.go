/* fixtures.go
 * Contains the static daily fixture definitions and the logic for matching user input against them
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"arena-bot/api/store"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FixtureDefinition describes one recurring daily tournament
type FixtureDefinition struct {
	Slug  string
	Title string
	Game  store.Game
}

// DailyFixtures is the fixed list of tournaments materialized for every UTC day
var DailyFixtures = []FixtureDefinition{
	{Slug: "sprint", Title: "Daily Sprint", Game: store.GameSnake},
	{Slug: "marathon", Title: "Daily Marathon", Game: store.GameTetris},
	{Slug: "duel", Title: "Daily Duel", Game: store.GamePong},
	{Slug: "smash", Title: "Daily Smash", Game: store.GameBreakout},
}

// FindFixture looks up a definition by its exact slug
func FindFixture(slug string) (FixtureDefinition, bool) {
	for _, def := range DailyFixtures {
		if def.Slug == slug {
			return def, true
		}
	}
	return FixtureDefinition{}, false
}

// ResolveFixture matches free text typed by a user (a slug or a title, possibly misspelled) to a definition.
// Preconditions: Receives the user's input
// Postconditions: Returns the best ranked definition and true, or false if nothing is close enough
func ResolveFixture(input string) (FixtureDefinition, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return FixtureDefinition{}, false
	}
	if def, ok := FindFixture(input); ok {
		return def, true
	}

	// Search both slugs and titles, remembering which definition every target came from
	lookup := make(map[string]FixtureDefinition, len(DailyFixtures)*2)
	var targets []string
	for _, def := range DailyFixtures {
		for _, target := range []string{def.Slug, strings.ToLower(def.Title)} {
			lookup[target] = def
			targets = append(targets, target)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(input, targets)
	if len(ranks) == 0 {
		// fall back to how far off a typo is
		best, bestDistance := "", -1
		for _, target := range targets {
			d := fuzzy.LevenshteinDistance(input, target)
			if bestDistance == -1 || d < bestDistance {
				best, bestDistance = target, d
			}
		}
		if bestDistance > 2 {
			return FixtureDefinition{}, false
		}
		return lookup[best], true
	}

	sort.Sort(ranks)
	return lookup[ranks[0].Target], true
}

// ResolveName matches free text against a list of names the way ResolveFixture does: an exact match wins,
// otherwise the best fuzzy ranked name. Returns the index into names, or -1
func ResolveName(input string, names []string) int {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return -1
	}

	lower := make([]string, len(names))
	for i, name := range names {
		lower[i] = strings.ToLower(name)
		if lower[i] == input {
			return i
		}
	}

	ranks := fuzzy.RankFind(input, lower)
	if len(ranks) == 0 {
		return -1
	}
	sort.Sort(ranks)
	return ranks[0].OriginalIndex
}

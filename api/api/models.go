/* models.go
 * Contains the view structs returned by the API
 * Authors: Zachary Bower
 */

package api

import (
	"arena-bot/api/shared"
	"arena-bot/api/store"
)

// PublicTournament is the reduced listing shown to regular users
type PublicTournament struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Status store.TournamentStatus `json:"status"`
	Game   store.Game             `json:"game"`
}

type MatchView struct {
	P1      *shared.Identity `json:"p1"`
	P2      *shared.Identity `json:"p2"`
	Winner  *shared.Identity `json:"winner"`
	P1Score float64          `json:"p1Score"`
	P2Score float64          `json:"p2Score"`
}

type RoundView struct {
	Matches []MatchView `json:"matches"`
}

// TournamentView is a tournament with every user id replaced by its identity
type TournamentView struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Game         store.Game             `json:"game"`
	Season       string                 `json:"season"`
	Status       store.TournamentStatus `json:"status"`
	Participants []shared.Identity      `json:"participants"`
	Rounds       []RoundView            `json:"rounds"`
	CurrentRound int                    `json:"currentRound"`
	BracketSize  int                    `json:"bracketSize"`
	Champion     *shared.Identity       `json:"champion,omitempty"`
}

// ResultEntry is one line of a fixture's top list
type ResultEntry struct {
	User  string  `json:"user"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Score float64 `json:"score"`
}

// FixtureResults is the top list of one daily fixture
type FixtureResults struct {
	Date  string        `json:"date"`
	Slug  string        `json:"slug"`
	Title string        `json:"title"`
	Game  store.Game    `json:"game"`
	Top   []ResultEntry `json:"top"`
}

/* models.go
 * This file contain the structs and helper functions that relate to DB objects. A Tournament is stored as one
 * document with its rounds and matches embedded, so the whole bracket moves with the aggregate on every write
 * Authors: Zachary Bower
 */

package store

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Game string

const (
	GameSnake    Game = "snake"
	GameTetris   Game = "tetris"
	GamePong     Game = "pong"
	GameBreakout Game = "breakout"
)

// Valid reports whether g is one of the supported games
func (g Game) Valid() bool {
	switch g {
	case GameSnake, GameTetris, GamePong, GameBreakout:
		return true
	}
	return false
}

type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusRunning   TournamentStatus = "running"
	StatusCompleted TournamentStatus = "completed"
)

// Match is one pairing inside a round. A nil slot is a bye
type Match struct {
	P1      *string `bson:"p1" json:"p1"`
	P2      *string `bson:"p2" json:"p2"`
	Winner  *string `bson:"winner" json:"winner"`
	P1Score float64 `bson:"p1Score" json:"p1Score"`
	P2Score float64 `bson:"p2Score" json:"p2Score"`
}

// IsContested reports whether both slots are filled, i.e. the match has to be played
func (m Match) IsContested() bool {
	return m.P1 != nil && m.P2 != nil
}

// Has reports whether userID occupies one of the two slots
func (m Match) Has(userID string) bool {
	return (m.P1 != nil && *m.P1 == userID) || (m.P2 != nil && *m.P2 == userID)
}

// Round is an ordered list of matches. The index of a match is how it is addressed when reporting
type Round struct {
	Matches []Match `bson:"matches" json:"matches"`
}

type Results struct {
	Champion *string `bson:"champion,omitempty" json:"champion,omitempty"`
}

// Tournament is the ad-hoc, admin driven bracket aggregate
type Tournament struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Game         Game               `bson:"game" json:"game"`
	Season       string             `bson:"season" json:"season"`
	Status       TournamentStatus   `bson:"status" json:"status"`
	Participants []string           `bson:"participants" json:"participants"`
	Rounds       []Round            `bson:"rounds" json:"rounds"`
	CurrentRound int                `bson:"currentRound" json:"currentRound"`
	BracketSize  int                `bson:"bracketSize" json:"bracketSize"`
	Results      Results            `bson:"results" json:"results"`
	Version      int64              `bson:"version" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a deep copy so a failed transition never leaks into the loaded document
func (t Tournament) Clone() Tournament {
	c := t
	c.Participants = slices.Clone(t.Participants)
	if t.Rounds != nil {
		c.Rounds = make([]Round, len(t.Rounds))
		for i, r := range t.Rounds {
			c.Rounds[i].Matches = slices.Clone(r.Matches)
		}
	}
	return c
}

// DailyTournament is a scheduler created fixture for one UTC calendar day
type DailyTournament struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Date         string             `bson:"date" json:"date"`
	Slug         string             `bson:"slug" json:"slug"`
	Title        string             `bson:"title" json:"title"`
	Game         Game               `bson:"game" json:"game"`
	Participants []string           `bson:"participants" json:"participants"`
	Locked       bool               `bson:"locked" json:"locked"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Score is one entry of the append-only score ledger
type Score struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Player    string             `bson:"player"`
	Game      Game               `bson:"game"`
	Score     float64            `bson:"score"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ScoreQuery filters the score ledger. From and To are both inclusive
type ScoreQuery struct {
	Game    Game
	From    time.Time
	To      time.Time
	Players []string
	Limit   int64
}

// User is a user directory document
type User struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email,omitempty"`
}

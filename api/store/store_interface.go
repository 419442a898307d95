/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"arena-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory resolves user ids to display identities. Unknown ids are left out of the returned map
type UserDirectory interface {
	LookupUsers(ctx context.Context, ids []string) (map[string]shared.Identity, error)
}

// ScoreLedger is the read-only view of the score ledger
type ScoreLedger interface {
	FetchScores(ctx context.Context, query ScoreQuery) ([]Score, error)
}

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	UserDirectory
	ScoreLedger

	InsertTournament(ctx context.Context, tournament *Tournament) error
	GetTournament(ctx context.Context, id primitive.ObjectID) (Tournament, error)
	ListTournaments(ctx context.Context, statuses ...TournamentStatus) ([]Tournament, error)
	UpdateTournament(ctx context.Context, tournament *Tournament) error

	FindDailyTournament(ctx context.Context, date string, slug string) (DailyTournament, error)
	InsertDailyTournament(ctx context.Context, daily DailyTournament) error
	ListDailyTournaments(ctx context.Context, date string) ([]DailyTournament, error)
	AddDailyParticipant(ctx context.Context, date string, slug string, userID string) error
	LockDailyTournamentsBefore(ctx context.Context, date string) (int64, error)

	UpsertUser(ctx context.Context, user User) error
	Disconnect(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

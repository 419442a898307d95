/* api.go
 * This file contains the API struct and its constructors. The public methods are split by concern into
 * tournaments.go, daily.go and results.go. Front ends (web and bot) should only call this package, never the store
 * or logic packages directly
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"

	"arena-bot/api/logic"
	"arena-bot/api/shared"
	"arena-bot/api/store"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxAttempts bounds the read-modify-write cycles of one tournament mutation
const DefaultMaxAttempts = 16

// API provides methods for interacting with the tournament data layer
type API struct {
	Store  store.Interface
	Users  store.UserDirectory
	Scores store.ScoreLedger
	Clock  clockwork.Clock
	Rand   logic.Rand

	// MaxAttempts is how many times a tournament mutation is tried before giving up on version conflicts
	MaxAttempts int
}

// NewAPI connects to mongo and creates a new API instance backed by it
// Preconditions: Receives context and strings containing dbName and mongoURI
// Postconditions: Returns a ready API with indexes in place, or error if it occurs
func NewAPI(ctx context.Context, dbName string, mongoURI string) (*API, error) {
	s, err := store.NewStore(ctx, dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = s.Disconnect(ctx)
		return nil, err
	}

	return New(s), nil
}

// New wraps an existing store. The store also serves as user directory and score ledger, and the real clock and
// process-wide random source are used
func New(s store.Interface) *API {
	return &API{
		Store:       s,
		Users:       s,
		Scores:      s,
		Clock:       clockwork.NewRealClock(),
		Rand:        logic.ProcessRand,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Close disconnects the underlying store
func (a *API) Close(ctx context.Context) error {
	return a.Store.Disconnect(ctx)
}

// RegisterUser records the display identity of a user in the user directory
func (a *API) RegisterUser(ctx context.Context, user shared.User) error {
	if user.UserID == "" {
		return shared.ErrMissingField
	}
	return a.Store.UpsertUser(ctx, store.User{ID: user.UserID, Name: user.Username})
}

func (a *API) maxAttempts() int {
	if a.MaxAttempts < 1 {
		return 1
	}
	return a.MaxAttempts
}

// identities resolves ids through the user directory. Ids the directory does not know still get an identity
// carrying only the id
func (a *API) identities(ctx context.Context, ids []string) (map[string]shared.Identity, error) {
	if len(ids) == 0 {
		return map[string]shared.Identity{}, nil
	}

	found, err := a.Users.LookupUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error looking up users: %w", err)
	}

	resolved := make(map[string]shared.Identity, len(ids))
	for _, id := range ids {
		identity, ok := found[id]
		if !ok {
			identity = shared.Identity{UserID: id}
		}
		resolved[id] = identity
	}
	return resolved, nil
}

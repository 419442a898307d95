/* tournaments.go
 * Contains the public methods for ad-hoc tournaments. Every mutation is a read-modify-write of the whole
 * tournament document guarded by its version, repeated when another writer got there first
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"arena-bot/api/logic"
	"arena-bot/api/shared"
	"arena-bot/api/store"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// errUnchanged is returned by a mutation that has nothing to write
var errUnchanged = errors.New("tournament unchanged")

// CreateTournament stores a new upcoming tournament
// Preconditions: Receives a non-empty name and season and a supported game
// Postconditions: Returns the stored tournament with its generated id, or error if it occurs
func (a *API) CreateTournament(ctx context.Context, name string, game store.Game, season string) (store.Tournament, error) {
	t, err := logic.NewTournament(name, game, season)
	if err != nil {
		return store.Tournament{}, err
	}

	now := a.Clock.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := a.Store.InsertTournament(ctx, &t); err != nil {
		return store.Tournament{}, fmt.Errorf("error storing tournament: %w", err)
	}

	log.Info().Str("tournament_id", t.ID.Hex()).Str("name", t.Name).Msg("tournament created")
	return t, nil
}

// ListTournaments returns every tournament, newest first
func (a *API) ListTournaments(ctx context.Context) ([]store.Tournament, error) {
	return a.Store.ListTournaments(ctx)
}

// ListPublicTournaments returns the upcoming and running tournaments in their reduced form
func (a *API) ListPublicTournaments(ctx context.Context) ([]PublicTournament, error) {
	tournaments, err := a.Store.ListTournaments(ctx, store.StatusUpcoming, store.StatusRunning)
	if err != nil {
		return nil, err
	}

	public := make([]PublicTournament, 0, len(tournaments))
	for _, t := range tournaments {
		public = append(public, PublicTournament{ID: t.ID.Hex(), Name: t.Name, Status: t.Status, Game: t.Game})
	}
	return public, nil
}

// FindPublicTournament picks the public tournament whose name best matches input
func (a *API) FindPublicTournament(ctx context.Context, input string) (PublicTournament, error) {
	public, err := a.ListPublicTournaments(ctx)
	if err != nil {
		return PublicTournament{}, err
	}

	names := make([]string, len(public))
	for i, p := range public {
		names[i] = p.Name
	}
	idx := logic.ResolveName(input, names)
	if idx < 0 {
		return PublicTournament{}, shared.ErrTournamentNotFound
	}
	return public[idx], nil
}

// GetTournament returns the tournament with all user ids resolved through the user directory
func (a *API) GetTournament(ctx context.Context, id string) (TournamentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return TournamentView{}, err
	}
	t, err := a.loadTournament(ctx, oid)
	if err != nil {
		return TournamentView{}, err
	}

	ids := referencedIDs(t)
	identities, err := a.identities(ctx, ids)
	if err != nil {
		return TournamentView{}, err
	}
	return buildView(t, identities), nil
}

// AddParticipants merges ids into the participant set of an upcoming tournament
func (a *API) AddParticipants(ctx context.Context, id string, ids []string) (store.Tournament, error) {
	return a.mutateTournament(ctx, id, func(t *store.Tournament) error {
		changed, err := logic.AddParticipants(t, ids)
		if err != nil {
			return err
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
}

// JoinTournament adds the calling user to an upcoming tournament
func (a *API) JoinTournament(ctx context.Context, id string, userID string) error {
	if userID == "" {
		return shared.ErrUnauthenticated
	}
	_, err := a.AddParticipants(ctx, id, []string{userID})
	return err
}

// StartTournament seeds round 0 and moves the tournament to running. A non-nil override replaces the participants
func (a *API) StartTournament(ctx context.Context, id string, override []string) (store.Tournament, error) {
	t, err := a.mutateTournament(ctx, id, func(t *store.Tournament) error {
		return logic.StartTournament(t, override, a.Rand)
	})
	if err != nil {
		return store.Tournament{}, err
	}

	log.Info().Str("tournament_id", id).Int("bracket_size", t.BracketSize).Int("participants", len(t.Participants)).Msg("tournament started")
	return t, nil
}

// ReportMatch records a winner and/or scores for one match
func (a *API) ReportMatch(ctx context.Context, id string, report logic.MatchReport) error {
	_, err := a.mutateTournament(ctx, id, func(t *store.Tournament) error {
		return logic.ReportMatch(t, report)
	})
	return err
}

// AdvanceRound closes the current round, either building the next one or completing the tournament
func (a *API) AdvanceRound(ctx context.Context, id string, round int) (store.Tournament, error) {
	t, err := a.mutateTournament(ctx, id, func(t *store.Tournament) error {
		return logic.AdvanceRound(t, round)
	})
	if err != nil {
		return store.Tournament{}, err
	}

	event := log.Info().Str("tournament_id", id).Int("round", round)
	if t.Status == store.StatusCompleted && t.Results.Champion != nil {
		event.Str("champion", *t.Results.Champion).Msg("tournament completed")
	} else {
		event.Msg("round advanced")
	}
	return t, nil
}

// mutateTournament loads the tournament, applies mutate to a copy and writes it back at the loaded version. A
// version conflict restarts the cycle from a fresh read
// Preconditions: Receives context, a hex tournament id and a mutation that validates before it changes anything
// Postconditions: Returns the tournament as written (or as loaded when mutate reports errUnchanged), the error of
// mutate, or ErrConcurrentModification when every attempt lost against another writer
func (a *API) mutateTournament(ctx context.Context, id string, mutate func(t *store.Tournament) error) (store.Tournament, error) {
	oid, err := parseID(id)
	if err != nil {
		return store.Tournament{}, err
	}

	for attempt := 1; attempt <= a.maxAttempts(); attempt++ {
		current, err := a.loadTournament(ctx, oid)
		if err != nil {
			return store.Tournament{}, err
		}

		next := current.Clone()
		if err := mutate(&next); err != nil {
			if errors.Is(err, errUnchanged) {
				return current, nil
			}
			return store.Tournament{}, err
		}
		next.UpdatedAt = a.Clock.Now().UTC()

		err = a.Store.UpdateTournament(ctx, &next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return store.Tournament{}, fmt.Errorf("error updating tournament: %w", err)
		}
		log.Debug().Str("tournament_id", id).Int("attempt", attempt).Msg("version conflict, retrying")
	}

	log.Warn().Str("tournament_id", id).Int("attempts", a.maxAttempts()).Msg("giving up after repeated version conflicts")
	return store.Tournament{}, shared.ErrConcurrentModification
}

func (a *API) loadTournament(ctx context.Context, id primitive.ObjectID) (store.Tournament, error) {
	t, err := a.Store.GetTournament(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Tournament{}, shared.ErrTournamentNotFound
	}
	if err != nil {
		return store.Tournament{}, fmt.Errorf("error fetching tournament: %w", err)
	}
	return t, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, shared.ErrInvalidID
	}
	return oid, nil
}

// referencedIDs collects every distinct user id the tournament mentions
func referencedIDs(t store.Tournament) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id *string) {
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}

	for i := range t.Participants {
		add(&t.Participants[i])
	}
	for _, r := range t.Rounds {
		for _, m := range r.Matches {
			add(m.P1)
			add(m.P2)
			add(m.Winner)
		}
	}
	add(t.Results.Champion)
	return ids
}

func buildView(t store.Tournament, identities map[string]shared.Identity) TournamentView {
	resolve := func(id *string) *shared.Identity {
		if id == nil {
			return nil
		}
		identity := identities[*id]
		return &identity
	}

	view := TournamentView{
		ID:           t.ID.Hex(),
		Name:         t.Name,
		Game:         t.Game,
		Season:       t.Season,
		Status:       t.Status,
		Participants: make([]shared.Identity, 0, len(t.Participants)),
		Rounds:       make([]RoundView, 0, len(t.Rounds)),
		CurrentRound: t.CurrentRound,
		BracketSize:  t.BracketSize,
		Champion:     resolve(t.Results.Champion),
	}
	for _, p := range t.Participants {
		view.Participants = append(view.Participants, identities[p])
	}
	for _, r := range t.Rounds {
		rv := RoundView{Matches: make([]MatchView, 0, len(r.Matches))}
		for _, m := range r.Matches {
			rv.Matches = append(rv.Matches, MatchView{
				P1:      resolve(m.P1),
				P2:      resolve(m.P2),
				Winner:  resolve(m.Winner),
				P1Score: m.P1Score,
				P2Score: m.P2Score,
			})
		}
		view.Rounds = append(view.Rounds, rv)
	}
	return view
}

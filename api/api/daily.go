/* daily.go
 * Contains the public methods for the daily fixtures. Fixtures for a UTC day are created lazily the first time that
 * day is touched, and the unique (date, slug) index lets any number of callers race on it safely
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
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureToday creates whichever of today's fixtures do not exist yet and locks the fixtures of earlier days
// Preconditions: Receives context
// Postconditions: Returns today's date, or error if it occurs. Calling it again is a no-op
func (a *API) EnsureToday(ctx context.Context) (string, error) {
	now := a.Clock.Now().UTC()
	today := logic.Today(now)

	for _, def := range logic.DailyFixtures {
		_, err := a.Store.FindDailyTournament(ctx, today, def.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("error fetching daily tournament %s: %w", def.Slug, err)
		}

		err = a.Store.InsertDailyTournament(ctx, store.DailyTournament{
			Date:         today,
			Slug:         def.Slug,
			Title:        def.Title,
			Game:         def.Game,
			Participants: []string{},
			CreatedAt:    now,
		})
		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("error creating daily tournament %s: %w", def.Slug, err)
		}
		log.Info().Str("date", today).Str("slug", def.Slug).Msg("daily tournament created")
	}

	locked, err := a.Store.LockDailyTournamentsBefore(ctx, today)
	if err != nil {
		return "", fmt.Errorf("error locking past daily tournaments: %w", err)
	}
	if locked > 0 {
		log.Info().Str("date", today).Int64("locked", locked).Msg("locked past daily tournaments")
	}
	return today, nil
}

// ListToday returns today's fixtures in the order of logic.DailyFixtures
func (a *API) ListToday(ctx context.Context) ([]store.DailyTournament, error) {
	today, err := a.EnsureToday(ctx)
	if err != nil {
		return nil, err
	}

	fixtures, err := a.Store.ListDailyTournaments(ctx, today)
	if err != nil {
		return nil, err
	}
	return orderFixtures(fixtures), nil
}

// JoinDaily adds userID to today's fixture identified by slug. Joining twice is a no-op
func (a *API) JoinDaily(ctx context.Context, slug string, userID string) error {
	if userID == "" {
		return shared.ErrUnauthenticated
	}
	if _, ok := logic.FindFixture(slug); !ok {
		return shared.ErrFixtureNotFound
	}

	today, err := a.EnsureToday(ctx)
	if err != nil {
		return err
	}

	err = a.Store.AddDailyParticipant(ctx, today, slug, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoMatch) {
		return fmt.Errorf("error joining daily tournament: %w", err)
	}

	// Nothing matched {date, slug, locked:false}, find out which part failed
	daily, err := a.Store.FindDailyTournament(ctx, today, slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return shared.ErrFixtureNotFound
	}
	if err != nil {
		return fmt.Errorf("error fetching daily tournament: %w", err)
	}
	if daily.Locked {
		return shared.ErrAlreadyLocked
	}
	return a.Store.AddDailyParticipant(ctx, today, slug, userID)
}

// orderFixtures sorts fixtures by their position in the static definition list. Unknown slugs go last
func orderFixtures(fixtures []store.DailyTournament) []store.DailyTournament {
	bySlug := make(map[string]store.DailyTournament, len(fixtures))
	for _, f := range fixtures {
		bySlug[f.Slug] = f
	}

	ordered := make([]store.DailyTournament, 0, len(fixtures))
	for _, def := range logic.DailyFixtures {
		if f, ok := bySlug[def.Slug]; ok {
			ordered = append(ordered, f)
			delete(bySlug, def.Slug)
		}
	}
	for _, f := range fixtures {
		if _, ok := bySlug[f.Slug]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

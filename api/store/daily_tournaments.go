/* daily_tournaments.go
 * Contains the methods for interacting with the daily_tournaments collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindDailyTournament fetches the fixture for a date and slug. A missing fixture returns mongo.ErrNoDocuments
func (s *Store) FindDailyTournament(ctx context.Context, date string, slug string) (DailyTournament, error) {
	var result DailyTournament
	err := s.Collections.DailyTournaments.FindOne(ctx, bson.M{"date": date, "slug": slug}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return DailyTournament{}, err
		}
		return DailyTournament{}, fmt.Errorf("error fetching daily tournament from db: %w", err)
	}
	return result, nil
}

// InsertDailyTournament creates a fixture. A unique index violation on (date, slug) returns ErrDuplicate
func (s *Store) InsertDailyTournament(ctx context.Context, daily DailyTournament) error {
	if daily.Participants == nil {
		daily.Participants = []string{}
	}

	_, err := s.Collections.DailyTournaments.InsertOne(ctx, daily)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert daily tournament: %w", err)
	}
	return nil
}

// ListDailyTournaments returns every fixture for the given date
func (s *Store) ListDailyTournaments(ctx context.Context, date string) ([]DailyTournament, error) {
	opts := options.Find().SetSort(bson.D{{Key: "slug", Value: 1}})
	cursor, err := s.Collections.DailyTournaments.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching daily tournaments from db: %w", err)
	}

	results := []DailyTournament{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of daily tournaments: %w", err)
	}
	return results, nil
}

// AddDailyParticipant adds userID to the participant set of an unlocked fixture in one atomic update.
// Preconditions: Receives date, slug and the user id to add
// Postconditions: Returns nil if the fixture is unlocked (joining twice is a no-op), ErrNoMatch if the fixture is
// missing or locked, or another error if the update fails
func (s *Store) AddDailyParticipant(ctx context.Context, date string, slug string, userID string) error {
	filter := bson.M{"date": date, "slug": slug, "locked": false}
	update := bson.M{"$addToSet": bson.M{"participants": userID}}

	res, err := s.Collections.DailyTournaments.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add daily participant: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// LockDailyTournamentsBefore locks every unlocked fixture dated strictly before date and returns how many were locked
func (s *Store) LockDailyTournamentsBefore(ctx context.Context, date string) (int64, error) {
	filter := bson.M{"date": bson.M{"$lt": date}, "locked": false}
	update := bson.M{"$set": bson.M{"locked": true}}

	res, err := s.Collections.DailyTournaments.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to lock past daily tournaments: %w", err)
	}
	return res.ModifiedCount, nil
}

/* tournaments.go
 * Contains the methods for interacting with the tournaments collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertTournament stores a new tournament document
// Preconditions: Receives a tournament with no id, its version is reset to 1
// Postconditions: The tournament is inserted and its ID field is populated, or an error is returned
func (s *Store) InsertTournament(ctx context.Context, tournament *Tournament) error {
	if tournament.ID.IsZero() {
		tournament.ID = primitive.NewObjectID()
	}
	tournament.Version = 1

	_, err := s.Collections.Tournaments.InsertOne(ctx, tournament)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

// GetTournament fetches a single tournament by id. A missing tournament returns mongo.ErrNoDocuments
func (s *Store) GetTournament(ctx context.Context, id primitive.ObjectID) (Tournament, error) {
	var result Tournament
	err := s.Collections.Tournaments.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Tournament{}, err
		}
		return Tournament{}, fmt.Errorf("error fetching tournament from db: %w", err)
	}
	return result, nil
}

// ListTournaments returns tournaments newest first, optionally restricted to the given statuses
func (s *Store) ListTournaments(ctx context.Context, statuses ...TournamentStatus) ([]Tournament, error) {
	filter := bson.M{}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.Collections.Tournaments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching tournaments from db: %w", err)
	}

	results := []Tournament{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of tournaments: %w", err)
	}
	return results, nil
}

// UpdateTournament replaces the whole tournament document, conditional on the version it was loaded at.
// Preconditions: Receives a tournament previously returned by GetTournament or InsertTournament
// Postconditions: The document is replaced and tournament.Version is incremented, or ErrVersionConflict is
// returned when another writer got there first
func (s *Store) UpdateTournament(ctx context.Context, tournament *Tournament) error {
	loaded := tournament.Version
	replacement := *tournament
	replacement.Version = loaded + 1

	filter := bson.M{"_id": tournament.ID, "version": loaded}
	res, err := s.Collections.Tournaments.ReplaceOne(ctx, filter, replacement)
	if err != nil {
		return fmt.Errorf("tournament update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}

	tournament.Version = replacement.Version
	return nil
}

/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into four files:
 * tournaments, daily_tournaments, scores and users. Each of these files contain methods for interacting with that
 * part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict is returned when a conditional write finds the document at a different version than the one
// it was loaded at
var ErrVersionConflict = errors.New("document version conflict")

// ErrDuplicate is returned when an insert violates a unique index
var ErrDuplicate = errors.New("document already exists")

// ErrNoMatch is returned when a conditional update matches no document
var ErrNoMatch = errors.New("no document matched the update filter")

type Collections struct {
	Tournaments      *mongo.Collection
	DailyTournaments *mongo.Collection
	Scores           *mongo.Collection
	Users            *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections Collections
}

// Function for initialising Store. Connects to mongo and sets the collection values
// Preconditions: Receives context and strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	return &Store{
		Client:   client,
		Database: db,
		Collections: Collections{
			Tournaments:      db.Collection("tournaments"),
			DailyTournaments: db.Collection("daily_tournaments"),
			Scores:           db.Collection("scores"),
			Users:            db.Collection("users"),
		},
	}, nil
}

// EnsureIndexes creates the indexes the store relies on. The unique (date, slug) index is what makes concurrent
// daily fixture creation safe
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.DailyTournaments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("date_slug_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create daily tournament index: %w", err)
	}

	_, err = s.Collections.Scores.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("game_created_at"),
	})
	if err != nil {
		return fmt.Errorf("failed to create score index: %w", err)
	}

	log.Debug().Str("database", s.Database.Name()).Msg("indexes ensured")
	return nil
}

// Disconnect closes the underlying client
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

/* users.go
 * Contains the methods for interacting with the users collection, which backs the user directory
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"arena-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LookupUsers resolves user ids to display identities in one query
func (s *Store) LookupUsers(ctx context.Context, ids []string) (map[string]shared.Identity, error) {
	identities := make(map[string]shared.Identity, len(ids))
	if len(ids) == 0 {
		return identities, nil
	}

	cursor, err := s.Collections.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching users from db: %w", err)
	}

	var users []User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of users: %w", err)
	}

	for _, u := range users {
		identities[u.ID] = shared.Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
	}
	return identities, nil
}

// UpsertUser creates or refreshes a user directory entry
func (s *Store) UpsertUser(ctx context.Context, user User) error {
	if user.ID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	set := bson.M{"name": user.Name}
	if user.Email != "" {
		set["email"] = user.Email
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.Collections.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

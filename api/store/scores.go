/* scores.go
 * Contains the read-only queries against the scores collection (the score ledger)
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchScores returns ledger entries matching the query, highest score first
// Preconditions: Receives a ScoreQuery. An empty Players list matches nobody, a Limit of 0 means no limit
// Postconditions: Returns the matching scores, or an error if it occurs
func (s *Store) FetchScores(ctx context.Context, query ScoreQuery) ([]Score, error) {
	if len(query.Players) == 0 {
		return []Score{}, nil
	}

	filter := bson.M{
		"game":      query.Game,
		"createdAt": bson.M{"$gte": query.From, "$lte": query.To},
		"player":    bson.M{"$in": query.Players},
	}
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}, {Key: "createdAt", Value: 1}})
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := s.Collections.Scores.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching scores from db: %w", err)
	}

	results := []Score{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of scores: %w", err)
	}
	return results, nil
}

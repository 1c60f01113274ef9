// Package content holds what the portfolio collections share: a generic
// append-only Mongo store, response timestamp formatting, cached public lists
// and the mapping of upload failures to HTTP errors.
package content

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrForbidden is returned by services when the actor may not mutate content.
var ErrForbidden = errors.New("forbidden")

const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func NewID() string {
	return primitive.NewObjectID().Hex()
}

// Now returns the current time truncated to the millisecond precision Mongo stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Timestamp renders t as an ISO-8601 UTC string with milliseconds.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// MongoStore persists documents of type T and lists them newest first.
type MongoStore[T any] struct {
	col *mongo.Collection
}

func NewMongoStore[T any](col *mongo.Collection) *MongoStore[T] {
	return &MongoStore[T]{col: col}
}

func (s *MongoStore[T]) Insert(ctx context.Context, doc T) error {
	_, err := s.col.InsertOne(ctx, doc)
	return err
}

func (s *MongoStore[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

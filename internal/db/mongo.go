package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Admins       *mongo.Collection
	Videos       *mongo.Collection
	Branding     *mongo.Collection
	FullProjects *mongo.Collection
	Designs      *mongo.Collection
	Testimonials *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Admins:       db.Collection("admins"),
		Videos:       db.Collection("videoprojects"),
		Branding:     db.Collection("brandingitems"),
		FullProjects: db.Collection("fullprojects"),
		Designs:      db.Collection("designitems"),
		Testimonials: db.Collection("testimonials"),
	}

	return client, cols, nil
}

// EnsureIndexes creates the identity and listing indexes. Field-level rules
// live in the request validators, not here.
func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Admins.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = cols.Videos.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	for _, col := range []*mongo.Collection{cols.Branding, cols.FullProjects, cols.Designs, cols.Testimonials} {
		_, err := col.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

package videos

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, v Video) error
	Get(ctx context.Context, id string) (Video, error)
	Update(ctx context.Context, id string, set bson.M) (Video, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, includeUnpublished bool) ([]Video, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, v Video) error {
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *MongoRepository) Get(ctx context.Context, id string) (Video, error) {
	var v Video
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return Video{}, err
	}
	return v, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Video
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Video{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) List(ctx context.Context, includeUnpublished bool) ([]Video, error) {
	query := bson.M{"isPublished": true}
	if includeUnpublished {
		query = bson.M{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Video, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

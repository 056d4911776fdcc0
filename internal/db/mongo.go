package db

import (
	"context"
	"time"

	"github.com/Tarakeshp07/livekit-server/internal/store" // Collection name

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// connectTimeout bounds the initial connection and ping
const connectTimeout = 10 * time.Second

// Connect opens a MongoDB connection and verifies it with a ping
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the users collection relies on: unique
// username and email (uniqueness is enforced here, not by application-level
// locking), plus institutionName and createdAt for filtering and sorting.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "institutionName", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := database.Collection(store.UsersCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/botirk38/tastematch/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase   = "tastematch"
	defaultMongoCollection = "results"
)

// MongoBackend implements CacheBackend with one MongoDB document per key.
type MongoBackend[K comparable, V any] struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoDocument is the stored shape of a cached value.
type mongoDocument[V any] struct {
	ID        string `bson:"_id"`
	Value     V      `bson:"value"`
	Timestamp int64  `bson:"timestamp"`
}

// NewMongoBackend connects to MongoDB and verifies the connection.
// Options "database" and "collection" select where results are kept.
func NewMongoBackend[K comparable, V any](config types.BackendConfig) (*MongoBackend[K, V], error) {
	if config.ConnectionString == "" {
		return nil, errors.New("mongo connection string is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.ConnectionString)
	if config.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username: config.Username,
			Password: config.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := stringOption(config.Options, "database", defaultMongoDatabase)
	collection := stringOption(config.Options, "collection", defaultMongoCollection)

	return &MongoBackend[K, V]{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func stringOption(opts map[string]any, name, def string) string {
	if v, ok := opts[name]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

func (b *MongoBackend[K, V]) id(key K) string {
	return fmt.Sprintf("%v", key)
}

// Set upserts the document for key
func (b *MongoBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	doc := mongoDocument[V]{
		ID:        b.id(key),
		Value:     value,
		Timestamp: time.Now().Unix(),
	}

	_, err := b.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set entry in MongoDB: %w", err)
	}
	return nil
}

// Get retrieves the value stored for key
func (b *MongoBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var zero V
	var doc mongoDocument[V]

	err := b.collection.FindOne(ctx, bson.M{"_id": b.id(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to get entry from MongoDB: %w", err)
	}

	return doc.Value, true, nil
}

// Delete removes the document for key
func (b *MongoBackend[K, V]) Delete(ctx context.Context, key K) error {
	if _, err := b.collection.DeleteOne(ctx, bson.M{"_id": b.id(key)}); err != nil {
		return fmt.Errorf("failed to delete entry from MongoDB: %w", err)
	}
	return nil
}

// Contains checks if a document exists for key
func (b *MongoBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	n, err := b.collection.CountDocuments(ctx, bson.M{"_id": b.id(key)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check key existence in MongoDB: %w", err)
	}
	return n > 0, nil
}

// Flush removes every document in the collection
func (b *MongoBackend[K, V]) Flush(ctx context.Context) error {
	if _, err := b.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to flush MongoDB: %w", err)
	}
	return nil
}

// Len returns the number of documents in the collection
func (b *MongoBackend[K, V]) Len(ctx context.Context) (int, error) {
	n, err := b.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count entries in MongoDB: %w", err)
	}
	return int(n), nil
}

// Keys returns the keys of all stored documents
func (b *MongoBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	cursor, err := b.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys in MongoDB: %w", err)
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode keys from MongoDB: %w", err)
	}

	keys := make([]K, 0, len(docs))
	for _, doc := range docs {
		if key, ok := decodeKey[K](doc.ID); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close disconnects the MongoDB client
func (b *MongoBackend[K, V]) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

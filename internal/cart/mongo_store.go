package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// MongoStore persists the cart blob in a mongo collection, one document
// per cart key.
type MongoStore struct {
	collection *mongo.Collection
	key        string
}

type cartDocument struct {
	Key       string    `bson:"_id"`
	Blob      []byte    `bson:"blob"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func ConnectMongoDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(dbName), nil
}

func NewMongoStore(db *mongo.Database, key string) *MongoStore {
	if key == "" {
		key = DefaultKey
	}
	return &MongoStore{collection: db.Collection("carts"), key: key}
}

func (s *MongoStore) Load(ctx context.Context) (domain.Cart, error) {
	var doc cartDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return decodeCart(doc.Blob), nil
}

func (s *MongoStore) Save(ctx context.Context, c domain.Cart) error {
	data, err := encodeCart(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	doc := cartDocument{Key: s.key, Blob: data, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig configures the MongoDB connection for the session store.
type MongoConfig struct {
	ConnectionURL  string        `env:"IDPKIT_MONGO_URL,required"`
	Database       string        `env:"IDPKIT_MONGO_DB" envDefault:"idpkit"`
	Collection     string        `env:"IDPKIT_MONGO_COLLECTION" envDefault:"sessions"`
	ConnectTimeout time.Duration `env:"IDPKIT_MONGO_CONNECT_TIMEOUT" envDefault:"30s"`
	RetryAttempts  int           `env:"IDPKIT_MONGO_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"IDPKIT_MONGO_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectMongo establishes a MongoDB connection with retry, verifying it with
// a ping before handing it out.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrMongoNotReady
}

type mongoSession struct {
	SessionKey string            `bson:"_id"`
	Fields     map[string]string `bson:"fields"`
	UpdatedAt  time.Time         `bson:"updated_at"`
}

// MongoStore implements Store on one document per session. Configure a TTL
// index on updated_at to expire abandoned sessions server-side.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed session store.
func NewMongoStore(client *mongo.Client, cfg MongoConfig) *MongoStore {
	return &MongoStore{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
	}
}

func (s *MongoStore) Get(ctx context.Context, sessionKey, field string) (string, error) {
	if sessionKey == "" {
		return "", ErrEmptySessionKey
	}

	var doc mongoSession
	err := s.coll.FindOne(ctx, bson.M{"_id": sessionKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", err
	}

	value, ok := doc.Fields[field]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MongoStore) Set(ctx context.Context, sessionKey, field, value string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": sessionKey},
		bson.M{"$set": bson.M{
			"fields." + field: value,
			"updated_at":      time.Now().UTC(),
		}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Delete(ctx context.Context, sessionKey string, fields ...string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}
	if len(fields) == 0 {
		return nil
	}

	unset := bson.M{}
	for _, field := range fields {
		unset["fields."+field] = ""
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": sessionKey},
		bson.M{
			"$unset": unset,
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}

func (s *MongoStore) Clear(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionKey})
	return err
}

var _ Store = (*MongoStore)(nil)

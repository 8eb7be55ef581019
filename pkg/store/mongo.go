package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/profile"
)

const (
	mongoDatabase   = "flexline"
	mongoCollection = "profiles"
)

// MongoStore persists profiles in a MongoDB collection, one document per
// profile name (upsert semantics).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Put upserts the profile by name. New documents get a fresh uuid id;
// existing ones keep theirs.
func (s *MongoStore) Put(ctx context.Context, p profile.Profile) (Record, error) {
	def, err := encode(p)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	filter := bson.M{"name": p.Name}
	update := bson.M{
		"$set":         bson.M{"definition": def, "updated_at": now},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "name": p.Name},
	}

	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "store profile %q", p.Name)
	}
	return s.Get(ctx, p.Name)
}

// Get returns the stored profile with the given name.
func (s *MongoStore) Get(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, errors.New(errors.ErrCodeProfileNotFound, "profile %q not found", name)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "load profile %q", name)
	}
	return rec, nil
}

// List returns all stored profiles sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list profiles")
	}
	defer cur.Close(ctx)

	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode profiles")
	}
	return out, nil
}

// Delete removes the profile with the given name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete profile %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeProfileNotFound, "profile %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

package precomp

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riverlane-tools/riverlane/pkg/errors"
)

// MongoStore reads and writes records in the collection the offline
// optimization service publishes to. Records are keyed by family_hash, which
// the service maintains a unique index on.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a collection as a record store. The caller owns the
// client's lifecycle; [MongoStore.Close] does not disconnect it.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Lookup implements [Store].
func (s *MongoStore) Lookup(ctx context.Context, familyHash string) (*Record, bool, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"family_hash": familyHash}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCache, err, "lookup precomputed layout %s", familyHash)
	}
	return &rec, true, nil
}

// Publish implements [Store].
func (s *MongoStore) Publish(ctx context.Context, rec *Record) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"family_hash": rec.FamilyHash},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "publish precomputed layout %s", rec.FamilyHash)
	}
	return nil
}

// Close implements [Store].
func (s *MongoStore) Close() error { return nil }

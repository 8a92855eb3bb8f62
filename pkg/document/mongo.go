package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists documents in a MongoDB collection, keyed by
// document name. It backs the shared-library server deployment where
// multiple editors pull from one material catalog; the CLI defaults to
// plain files and never requires a running MongoDB.
//
// Documents are stored serialized (the same YAML bytes [Write] produces)
// alongside their name and update time, so the on-disk and in-database
// representations cannot drift.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDoc is the stored shape of one document record.
type mongoDoc struct {
	Name      string    `bson:"name"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and returns a store over the
// "documents" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("documents"),
	}, nil
}

// Get retrieves a document by name. Returns ErrNotFound if no document
// with that name exists.
func (s *MongoStore) Get(ctx context.Context, name string) (*Document, error) {
	var rec mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find document %q: %w", name, err)
	}

	doc, err := Read(bytes.NewReader(rec.Data))
	if err != nil {
		return nil, fmt.Errorf("decode document %q: %w", name, err)
	}
	doc.URI = "mongodb:" + name
	return doc, nil
}

// Put stores a document under the given name, replacing any previous
// version.
func (s *MongoStore) Put(ctx context.Context, name string, doc *Document) error {
	var buf bytes.Buffer
	if err := WriteTo(doc, &buf); err != nil {
		return fmt.Errorf("serialize document %q: %w", name, err)
	}

	rec := mongoDoc{Name: name, Data: buf.Bytes(), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store document %q: %w", name, err)
	}
	return nil
}

// List returns the names of all stored documents, sorted by most
// recently updated.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var rec mongoDoc
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode document record: %w", err)
		}
		names = append(names, rec.Name)
	}
	return names, cur.Err()
}

// Delete removes a stored document. Deleting a missing name is a no-op.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete document %q: %w", name, err)
	}
	return nil
}

// Close disconnects the underlying MongoDB client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

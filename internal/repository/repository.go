// Package repository wraps a MongoDB collection with the typed operations the
// resource handlers need: find-all, find-by-id, insert, replace and delete.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by FindByID when no document matches the id.
var ErrNotFound = errors.New("document not found")

// Collection is a typed view over a single MongoDB collection.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection returns a Collection over db.<name>.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// FindAll returns every document in the collection.
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByID returns the document with the given id, or ErrNotFound.
func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	return doc, err
}

// Insert stores a new document and returns its generated id.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Replace overwrites the document with the given id and reports how many
// documents matched and how many were actually changed.
func (c *Collection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc T) (matched, modified int64, err error) {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// Delete removes the document with the given id and reports how many
// documents were deleted.
func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

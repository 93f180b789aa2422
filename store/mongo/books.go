package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

// Compile-time check that bookStore implements store.BookStore.
var _ store.BookStore = (*bookStore)(nil)

type bookStore struct {
	coll *mongo.Collection
}

func (b *bookStore) List(ctx context.Context) ([]models.Book, error) {
	cursor, err := b.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (b *bookStore) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	book.ID = primitive.NilObjectID
	res, err := b.coll.InsertOne(ctx, book)
	if err != nil {
		return nil, mapWriteError(err)
	}
	book.ID = res.InsertedID.(primitive.ObjectID)
	return book, nil
}

func (b *bookStore) Get(ctx context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	var book models.Book
	if err := b.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (b *bookStore) Replace(ctx context.Context, id string, book *models.Book) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	book.ID = primitive.NilObjectID

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated models.Book
	if err := b.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, book, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	return &updated, nil
}

func (b *bookStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	res, err := b.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

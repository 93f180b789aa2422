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

var _ store.MemberStore = (*memberStore)(nil)

type memberStore struct {
	coll *mongo.Collection
}

func (m *memberStore) List(ctx context.Context) ([]models.Member, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	members := []models.Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (m *memberStore) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	member.ID = primitive.NilObjectID
	if member.BooksBorrowed == nil {
		member.BooksBorrowed = []string{}
	}
	res, err := m.coll.InsertOne(ctx, member)
	if err != nil {
		return nil, mapWriteError(err)
	}
	member.ID = res.InsertedID.(primitive.ObjectID)
	return member, nil
}

func (m *memberStore) Get(ctx context.Context, id string) (*models.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	var member models.Member
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&member); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (m *memberStore) Replace(ctx context.Context, id string, member *models.Member) (*models.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	member.ID = primitive.NilObjectID
	if member.BooksBorrowed == nil {
		member.BooksBorrowed = []string{}
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated models.Member
	if err := m.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, member, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	return &updated, nil
}

func (m *memberStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

var _ store.UserStore = (*userStore)(nil)

type userStore struct {
	coll *mongo.Collection
}

func (u *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NilObjectID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, mapWriteError(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (u *userStore) FindByGithubID(ctx context.Context, githubID string) (*models.User, error) {
	var user models.User
	if err := u.coll.FindOne(ctx, bson.M{"githubId": githubID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	var user models.User
	if err := u.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

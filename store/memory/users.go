package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

var _ store.UserStore = (*UserStore)(nil)

// UserStore is the in-memory user collection.
type UserStore struct {
	s *Store

	// CreateErr, when set, is returned by Create. Lets tests simulate an
	// identity persistence failure during login.
	CreateErr error
}

func (u *UserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	if u.CreateErr != nil {
		return nil, u.CreateErr
	}

	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.GithubID == user.GithubID {
			return nil, store.ErrDuplicateKey
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.ID = primitive.NewObjectID()
	u.s.users[user.ID.Hex()] = *user
	return user, nil
}

func (u *UserStore) FindByGithubID(_ context.Context, githubID string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.GithubID == githubID {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}

	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

// Package store defines the persistence interfaces for books, members, and
// users, along with the sentinel errors every implementation must surface.
// Backends include MongoDB (store/mongo) and an in-memory implementation
// used by tests (store/memory).
package store

import (
	"context"
	"errors"

	"github.com/booklane/booklane/models"
)

var (
	// ErrNotFound indicates no document matches the given id.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey indicates a write violated a uniqueness constraint
	// (isbn, membershipId, or githubId).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidID indicates the supplied id is not a valid document id.
	ErrInvalidID = errors.New("invalid document id")
)

// BookStore persists Book documents.
type BookStore interface {
	// List returns all books. No ordering is guaranteed.
	List(ctx context.Context) ([]models.Book, error)

	// Create inserts a book and returns it with a generated id.
	Create(ctx context.Context, book *models.Book) (*models.Book, error)

	// Get returns the book with the given id.
	Get(ctx context.Context, id string) (*models.Book, error)

	// Replace overwrites the full document with the given id, keeping the id.
	Replace(ctx context.Context, id string, book *models.Book) (*models.Book, error)

	// Delete removes the book with the given id. Deletion is immediate and
	// irreversible; deleting an absent id returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// MemberStore persists Member documents. It mirrors BookStore's contract.
type MemberStore interface {
	List(ctx context.Context) ([]models.Member, error)
	Create(ctx context.Context, member *models.Member) (*models.Member, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Replace(ctx context.Context, id string, member *models.Member) (*models.Member, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists User documents created by the OAuth login flow.
// Users are never deleted.
type UserStore interface {
	// Create inserts a user. Returns ErrDuplicateKey if a user with the
	// same githubId already exists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByGithubID looks up a user by the provider's identity key.
	FindByGithubID(ctx context.Context, githubID string) (*models.User, error)

	// FindByID looks up a user by its document id.
	FindByID(ctx context.Context, id string) (*models.User, error)
}

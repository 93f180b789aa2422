// Package memory provides an in-memory implementation of the store
// interfaces. It is suitable for development and testing; it enforces the
// same uniqueness invariants as the MongoDB backend so conflict handling
// can be exercised without a running database.
package memory

import (
	"sync"

	"github.com/booklane/booklane/models"
)

// Store holds all in-memory collections and hands out typed collection
// stores, mirroring the MongoDB backend's shape.
type Store struct {
	mu sync.RWMutex

	books   map[string]models.Book
	members map[string]models.Member
	users   map[string]models.User
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		books:   make(map[string]models.Book),
		members: make(map[string]models.Member),
		users:   make(map[string]models.User),
	}
}

// Books returns the book collection store.
func (s *Store) Books() *BookStore {
	return &BookStore{s: s}
}

// Members returns the member collection store.
func (s *Store) Members() *MemberStore {
	return &MemberStore{s: s}
}

// Users returns the user collection store.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// BookCount reports the number of stored books. Used by tests to assert a
// rejected request never reached the store.
func (s *Store) BookCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

// Compile-time check that BookStore implements store.BookStore.
var _ store.BookStore = (*BookStore)(nil)

// BookStore is the in-memory book collection.
type BookStore struct {
	s *Store
}

func (b *BookStore) List(_ context.Context) ([]models.Book, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	books := make([]models.Book, 0, len(b.s.books))
	for _, book := range b.s.books {
		books = append(books, book)
	}
	return books, nil
}

func (b *BookStore) Create(_ context.Context, book *models.Book) (*models.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	for _, existing := range b.s.books {
		if existing.ISBN == book.ISBN {
			return nil, store.ErrDuplicateKey
		}
	}

	book.ID = primitive.NewObjectID()
	b.s.books[book.ID.Hex()] = *book
	return book, nil
}

func (b *BookStore) Get(_ context.Context, id string) (*models.Book, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}

	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	book, ok := b.s.books[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &book, nil
}

func (b *BookStore) Replace(_ context.Context, id string, book *models.Book) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.books[id]; !ok {
		return nil, store.ErrNotFound
	}
	for otherID, existing := range b.s.books {
		if otherID != id && existing.ISBN == book.ISBN {
			return nil, store.ErrDuplicateKey
		}
	}

	book.ID = oid
	b.s.books[id] = *book
	return book, nil
}

func (b *BookStore) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.books[id]; !ok {
		return store.ErrNotFound
	}
	delete(b.s.books, id)
	return nil
}

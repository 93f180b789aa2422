package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

func testBook(isbn string) *models.Book {
	price := 29.99
	stock := 3
	return &models.Book{
		Title:         "Test Driven Development",
		Author:        "Kent Beck",
		ISBN:          isbn,
		Genre:         "Programming",
		PublishedYear: 2002,
		Price:         &price,
		Stock:         &stock,
		Description:   "Follow the red-green-refactor rhythm.",
	}
}

func testMember(membershipID string) *models.Member {
	return &models.Member{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		MembershipID: membershipID,
		JoinDate:     models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Status:       "active",
	}
}

func TestBookStoreCRUD(t *testing.T) {
	ctx := context.Background()
	books := New().Books()

	list, err := books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := books.Create(ctx, testBook("isbn-1"))
	require.NoError(t, err)
	require.False(t, created.ID.IsZero(), "create must assign an id")

	got, err := books.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ISBN, got.ISBN)

	updated := testBook("isbn-1")
	newStock := 7
	updated.Stock = &newStock
	got, err = books.Replace(ctx, created.ID.Hex(), updated)
	require.NoError(t, err)
	require.NotNil(t, got.Stock)
	assert.Equal(t, 7, *got.Stock)
	assert.Equal(t, created.ID, got.ID, "replace must preserve the document id")

	require.NoError(t, books.Delete(ctx, created.ID.Hex()))
	_, err = books.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBookStoreDuplicateISBN(t *testing.T) {
	ctx := context.Background()
	books := New().Books()

	first, err := books.Create(ctx, testBook("isbn-1"))
	require.NoError(t, err)

	_, err = books.Create(ctx, testBook("isbn-1"))
	assert.ErrorIs(t, err, store.ErrDuplicateKey)

	// Replacing a book with its own ISBN is not a conflict.
	_, err = books.Replace(ctx, first.ID.Hex(), testBook("isbn-1"))
	assert.NoError(t, err)

	// Replacing it with another book's ISBN is.
	second, err := books.Create(ctx, testBook("isbn-2"))
	require.NoError(t, err)
	_, err = books.Replace(ctx, second.ID.Hex(), testBook("isbn-1"))
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestBookStoreUnknownAndInvalidIDs(t *testing.T) {
	ctx := context.Background()
	books := New().Books()

	missing := "64b0c0c0c0c0c0c0c0c0c0c0"

	_, err := books.Get(ctx, missing)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = books.Get(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = books.Replace(ctx, missing, testBook("isbn-1"))
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = books.Replace(ctx, "not-a-hex-id", testBook("isbn-1"))
	assert.ErrorIs(t, err, store.ErrInvalidID)

	assert.ErrorIs(t, books.Delete(ctx, missing), store.ErrNotFound)
	assert.ErrorIs(t, books.Delete(ctx, "not-a-hex-id"), store.ErrInvalidID)
}

func TestMemberStoreCRUD(t *testing.T) {
	ctx := context.Background()
	members := New().Members()

	created, err := members.Create(ctx, testMember("LIB-0001"))
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.NotNil(t, created.BooksBorrowed, "booksBorrowed must default to an empty list")

	_, err = members.Create(ctx, testMember("LIB-0001"))
	assert.ErrorIs(t, err, store.ErrDuplicateKey)

	got, err := members.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "LIB-0001", got.MembershipID)

	replacement := testMember("LIB-0001")
	replacement.Status = "inactive"
	got, err = members.Replace(ctx, created.ID.Hex(), replacement)
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)

	require.NoError(t, members.Delete(ctx, created.ID.Hex()))
	assert.ErrorIs(t, members.Delete(ctx, created.ID.Hex()), store.ErrNotFound)
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	created, err := users.Create(ctx, &models.User{GithubID: "12345", Username: "octocat"})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero(), "create must stamp createdAt")

	_, err = users.Create(ctx, &models.User{GithubID: "12345", Username: "other"})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)

	got, err := users.FindByGithubID(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	got, err = users.FindByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "octocat", got.Username)

	_, err = users.FindByGithubID(ctx, "99999")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = users.FindByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

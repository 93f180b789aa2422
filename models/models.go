// Package models holds the document types persisted by the API, along with
// their validation rules. Keeping them in one place lets the HTTP handlers,
// the store implementations, and the auth service share a single definition.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book represents a single book document.
//
// The bson tags control the field names in the document store; the json tags
// control the wire representation. The validate tags are checked by
// go-playground/validator before any write.
//
// Price and Stock are pointers so an absent field is distinguishable from an
// explicit 0: absence fails validation, 0 is a legal value.
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title" validate:"required,max=100"`
	Author        string             `bson:"author" json:"author" validate:"required,max=50"`
	ISBN          string             `bson:"isbn" json:"isbn" validate:"required"`
	Genre         string             `bson:"genre" json:"genre" validate:"required"`
	PublishedYear int                `bson:"publishedYear" json:"publishedYear" validate:"required"`
	Price         *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	Stock         *int               `bson:"stock" json:"stock" validate:"required,gte=0"`
	Description   string             `bson:"description" json:"description" validate:"required,max=500"`
}

// Member represents a library member document.
//
// JoinDate is accepted on the wire as an ISO date string ("2024-01-01" or a
// full RFC 3339 timestamp) and normalized to a date value before validation
// and persistence; see the Date type.
type Member struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName     string             `bson:"firstName" json:"firstName" validate:"required,max=50"`
	LastName      string             `bson:"lastName" json:"lastName" validate:"required,max=50"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	MembershipID  string             `bson:"membershipId" json:"membershipId" validate:"required"`
	JoinDate      Date               `bson:"joinDate" json:"joinDate" validate:"required"`
	BooksBorrowed []string           `bson:"booksBorrowed" json:"booksBorrowed"`
	Status        string             `bson:"status" json:"status" validate:"required,oneof=active inactive"`
}

// User represents an authenticated identity created as a side effect of a
// first successful GitHub login. Users are looked up by GithubID on
// subsequent logins and are never deleted by this system.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GithubID  string             `bson:"githubId" json:"githubId" validate:"required"`
	Username  string             `bson:"username" json:"username" validate:"required"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

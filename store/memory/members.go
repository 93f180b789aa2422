package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

var _ store.MemberStore = (*MemberStore)(nil)

// MemberStore is the in-memory member collection.
type MemberStore struct {
	s *Store
}

func (m *MemberStore) List(_ context.Context) ([]models.Member, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	members := make([]models.Member, 0, len(m.s.members))
	for _, member := range m.s.members {
		members = append(members, member)
	}
	return members, nil
}

func (m *MemberStore) Create(_ context.Context, member *models.Member) (*models.Member, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, existing := range m.s.members {
		if existing.MembershipID == member.MembershipID {
			return nil, store.ErrDuplicateKey
		}
	}

	if member.BooksBorrowed == nil {
		member.BooksBorrowed = []string{}
	}
	member.ID = primitive.NewObjectID()
	m.s.members[member.ID.Hex()] = *member
	return member, nil
}

func (m *MemberStore) Get(_ context.Context, id string) (*models.Member, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}

	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	member, ok := m.s.members[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &member, nil
}

func (m *MemberStore) Replace(_ context.Context, id string, member *models.Member) (*models.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.members[id]; !ok {
		return nil, store.ErrNotFound
	}
	for otherID, existing := range m.s.members {
		if otherID != id && existing.MembershipID == member.MembershipID {
			return nil, store.ErrDuplicateKey
		}
	}

	if member.BooksBorrowed == nil {
		member.BooksBorrowed = []string{}
	}
	member.ID = oid
	m.s.members[id] = *member
	return member, nil
}

func (m *MemberStore) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.members[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.s.members, id)
	return nil
}

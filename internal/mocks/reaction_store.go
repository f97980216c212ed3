package mocks

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

type reactionKey struct {
	userID    int64
	articleID int64
}

// MockReactionStore implements store.ReactionStore for testing
type MockReactionStore struct {
	ExistsFn     func(ctx context.Context, userID, articleID int64) (bool, error)
	InsertFn     func(ctx context.Context, userID, articleID int64, kind domain.ReactionKind) error
	RemoveFn     func(ctx context.Context, userID, articleID int64) error
	GetForUserFn func(ctx context.Context, userID, articleID int64) (domain.ReactionKind, bool, error)
	CountsFn     func(ctx context.Context, articleID int64) (int64, int64, error)

	Reactions map[reactionKey]domain.ReactionKind
}

// NewMockReactionStore creates a new mock store with initialized defaults
func NewMockReactionStore() *MockReactionStore {
	return &MockReactionStore{Reactions: make(map[reactionKey]domain.ReactionKind)}
}

// Ensure MockReactionStore implements store.ReactionStore interface
var _ store.ReactionStore = (*MockReactionStore)(nil)

// Exists implements the ReactionStore interface
func (m *MockReactionStore) Exists(ctx context.Context, userID, articleID int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, userID, articleID)
	}
	_, ok := m.Reactions[reactionKey{userID, articleID}]
	return ok, nil
}

// Insert implements the ReactionStore interface
func (m *MockReactionStore) Insert(
	ctx context.Context,
	userID, articleID int64,
	kind domain.ReactionKind,
) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, userID, articleID, kind)
	}

	if err := kind.Validate(); err != nil {
		return store.ErrInvalidReference
	}
	key := reactionKey{userID, articleID}
	if _, ok := m.Reactions[key]; ok {
		return store.ErrReactionExists
	}
	m.Reactions[key] = kind
	return nil
}

// Remove implements the ReactionStore interface
func (m *MockReactionStore) Remove(ctx context.Context, userID, articleID int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, userID, articleID)
	}
	delete(m.Reactions, reactionKey{userID, articleID})
	return nil
}

// GetForUser implements the ReactionStore interface
func (m *MockReactionStore) GetForUser(
	ctx context.Context,
	userID, articleID int64,
) (domain.ReactionKind, bool, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, userID, articleID)
	}

	kind, ok := m.Reactions[reactionKey{userID, articleID}]
	if !ok {
		return "", false, nil
	}
	return kind, true, nil
}

// Counts implements the ReactionStore interface
func (m *MockReactionStore) Counts(ctx context.Context, articleID int64) (int64, int64, error) {
	if m.CountsFn != nil {
		return m.CountsFn(ctx, articleID)
	}

	var likes, dislikes int64
	for key, kind := range m.Reactions {
		if key.articleID != articleID {
			continue
		}
		switch kind {
		case domain.ReactionLike:
			likes++
		case domain.ReactionDislike:
			dislikes++
		}
	}
	return likes, dislikes, nil
}

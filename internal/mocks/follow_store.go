package mocks

import (
	"context"
	"sort"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

type followKey struct {
	authorID   int64
	followerID int64
}

// MockFollowStore implements store.FollowStore for testing
type MockFollowStore struct {
	IsFollowingFn   func(ctx context.Context, authorID, followerID int64) (bool, error)
	FollowerCountFn func(ctx context.Context, authorID int64) (int64, error)
	FollowFn        func(ctx context.Context, authorID, followerID int64) error
	UnfollowFn      func(ctx context.Context, authorID, followerID int64) error
	PopularUsersFn  func(ctx context.Context, excludingUserID int64) ([]*domain.PopularUser, error)

	Follows map[followKey]bool
}

// NewMockFollowStore creates a new mock store with initialized defaults
func NewMockFollowStore() *MockFollowStore {
	return &MockFollowStore{Follows: make(map[followKey]bool)}
}

// Ensure MockFollowStore implements store.FollowStore interface
var _ store.FollowStore = (*MockFollowStore)(nil)

// IsFollowing implements the FollowStore interface
func (m *MockFollowStore) IsFollowing(ctx context.Context, authorID, followerID int64) (bool, error) {
	if m.IsFollowingFn != nil {
		return m.IsFollowingFn(ctx, authorID, followerID)
	}
	return m.Follows[followKey{authorID, followerID}], nil
}

// FollowerCount implements the FollowStore interface
func (m *MockFollowStore) FollowerCount(ctx context.Context, authorID int64) (int64, error) {
	if m.FollowerCountFn != nil {
		return m.FollowerCountFn(ctx, authorID)
	}

	var count int64
	for key := range m.Follows {
		if key.authorID == authorID {
			count++
		}
	}
	return count, nil
}

// Follow implements the FollowStore interface
func (m *MockFollowStore) Follow(ctx context.Context, authorID, followerID int64) error {
	if m.FollowFn != nil {
		return m.FollowFn(ctx, authorID, followerID)
	}

	key := followKey{authorID, followerID}
	if m.Follows[key] {
		return store.ErrAlreadyFollowing
	}
	m.Follows[key] = true
	return nil
}

// Unfollow implements the FollowStore interface
func (m *MockFollowStore) Unfollow(ctx context.Context, authorID, followerID int64) error {
	if m.UnfollowFn != nil {
		return m.UnfollowFn(ctx, authorID, followerID)
	}
	delete(m.Follows, followKey{authorID, followerID})
	return nil
}

// PopularUsers implements the FollowStore interface
func (m *MockFollowStore) PopularUsers(
	ctx context.Context,
	excludingUserID int64,
) ([]*domain.PopularUser, error) {
	if m.PopularUsersFn != nil {
		return m.PopularUsersFn(ctx, excludingUserID)
	}

	counts := make(map[int64]int64)
	for key := range m.Follows {
		if key.authorID != excludingUserID {
			counts[key.authorID]++
		}
	}

	popular := make([]*domain.PopularUser, 0, len(counts))
	for id, followers := range counts {
		popular = append(popular, &domain.PopularUser{ID: id, Followers: followers})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Followers != popular[j].Followers {
			return popular[i].Followers > popular[j].Followers
		}
		return popular[i].ID < popular[j].ID
	})
	return popular, nil
}

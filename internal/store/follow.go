package store

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
)

// FollowStore defines the interface for the directed follow graph.
// An edge (author, follower) means the follower receives the author's
// content in aggregation views.
type FollowStore interface {
	// IsFollowing reports whether the follower already follows the author.
	// Absence of an edge is success(false), never an error.
	IsFollowing(ctx context.Context, authorID, followerID int64) (bool, error)

	// FollowerCount returns the number of incoming edges for the author.
	// Returns 0 when no edges exist.
	FollowerCount(ctx context.Context, authorID int64) (int64, error)

	// Follow inserts the edge. The unique index on the pair makes a
	// concurrent duplicate surface as ErrAlreadyFollowing; referencing a
	// missing user is ErrInvalidReference.
	Follow(ctx context.Context, authorID, followerID int64) error

	// Unfollow deletes the edge. Deleting an absent edge is a no-op.
	Unfollow(ctx context.Context, authorID, followerID int64) error

	// PopularUsers ranks followed users by incoming edge count, descending,
	// excluding the given user. Ties break on ascending user ID. Users with
	// no followers do not appear.
	PopularUsers(ctx context.Context, excludingUserID int64) ([]*domain.PopularUser, error)
}

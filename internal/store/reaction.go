package store

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
)

// ReactionStore defines the interface for per-user, per-article reaction
// state. Kinds are resolved by name against the seeded reactions table, not
// passed as foreign keys.
type ReactionStore interface {
	// Exists reports whether the user already reacted to the article.
	Exists(ctx context.Context, userID, articleID int64) (bool, error)

	// Insert records a reaction of the named kind. A second reaction for the
	// same (user, article) pair surfaces as ErrReactionExists; changing a
	// reaction requires Remove first. An unknown kind name or a missing
	// user/article is ErrInvalidReference.
	Insert(ctx context.Context, userID, articleID int64, kind domain.ReactionKind) error

	// Remove deletes the user's reaction on the article regardless of kind.
	// Removing an absent reaction is a no-op.
	Remove(ctx context.Context, userID, articleID int64) error

	// GetForUser returns the kind of the user's reaction on the article.
	// Absence is ("", false), not an error.
	GetForUser(ctx context.Context, userID, articleID int64) (domain.ReactionKind, bool, error)

	// Counts returns the article's like and dislike tallies. Articles with
	// no reactions yield (0, 0).
	Counts(ctx context.Context, articleID int64) (likes, dislikes int64, err error)
}

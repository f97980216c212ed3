package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below. Callers treat it as a normal outcome, not a failure.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g. a second follow edge for the same pair). The
	// unique indexes added by the schema turn the old check-then-act races
	// into this error.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when an insert points at a parent row
	// that does not exist (foreign key violation), or names an unknown
	// reaction kind.
	ErrInvalidReference = errors.New("invalid reference")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrArticleNotFound indicates that the requested article does not exist.
	ErrArticleNotFound = fmt.Errorf("%w: article", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrLoginExists indicates that a user with the given login already
	// exists.
	ErrLoginExists = fmt.Errorf("%w: login", ErrDuplicate)

	// ErrAlreadyFollowing indicates that a follow edge for the ordered
	// (author, follower) pair already exists.
	ErrAlreadyFollowing = fmt.Errorf("%w: follow edge", ErrDuplicate)

	// ErrReactionExists indicates that the user already reacted to the
	// article. The old reaction must be removed before a new one is set.
	ErrReactionExists = fmt.Errorf("%w: reaction", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

package store

import (
	"context"

	"github.com/lenta-app/lenta-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Insert saves a new user row. The store assigns the ID and the
	// registration timestamp. Returns ErrLoginExists when the login is
	// already taken.
	Insert(ctx context.Context, reg *domain.Registration) error

	// ExistsByLogin reports whether a user with the given login exists.
	ExistsByLogin(ctx context.Context, login string) (bool, error)

	// GetByLoginAndPassword retrieves a user by exact credential match.
	// Returns ErrUserNotFound when no row matches; callers translate that
	// into an authentication failure rather than an error page.
	GetByLoginAndPassword(ctx context.Context, login, password string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetAvatar retrieves the (crop, full) avatar blobs for a login.
	// NULL columns come back as empty slices, not an error; a missing user
	// is ErrUserNotFound.
	GetAvatar(ctx context.Context, login string) (crop, full []byte, err error)

	// SetAvatar replaces both avatar blobs for a login.
	// Returns ErrUserNotFound if the login does not exist.
	SetAvatar(ctx context.Context, login string, crop, full []byte) error

	// SearchByName finds users whose first name, last name or login matches
	// the query case-insensitively. Returns an empty slice when nothing
	// matches.
	SearchByName(ctx context.Context, query string) ([]*domain.User, error)
}

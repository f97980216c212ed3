// Package mocks provides hand-written store mocks for handler tests.
// Each mock exposes function fields so a test can override exactly the
// behavior it cares about; unset fields fall back to a small in-memory
// default implementation.
package mocks

import (
	"context"
	"strings"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	InsertFn                func(ctx context.Context, reg *domain.Registration) error
	ExistsByLoginFn         func(ctx context.Context, login string) (bool, error)
	GetByLoginAndPasswordFn func(ctx context.Context, login, password string) (*domain.User, error)
	GetByIDFn               func(ctx context.Context, id int64) (*domain.User, error)
	GetAvatarFn             func(ctx context.Context, login string) ([]byte, []byte, error)
	SetAvatarFn             func(ctx context.Context, login string, crop, full []byte) error
	SearchByNameFn          func(ctx context.Context, query string) ([]*domain.User, error)

	// Data for the default implementation
	Users  map[string]*domain.User
	nextID int64
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[string]*domain.User)}
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Insert implements the UserStore interface
func (m *MockUserStore) Insert(ctx context.Context, reg *domain.Registration) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, reg)
	}

	if _, exists := m.Users[reg.Login]; exists {
		return store.ErrLoginExists
	}

	m.nextID++
	m.Users[reg.Login] = &domain.User{
		ID:        m.nextID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		About:     reg.About,
		Password:  reg.Password,
		Login:     reg.Login,
	}
	return nil
}

// ExistsByLogin implements the UserStore interface
func (m *MockUserStore) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	if m.ExistsByLoginFn != nil {
		return m.ExistsByLoginFn(ctx, login)
	}
	_, exists := m.Users[login]
	return exists, nil
}

// GetByLoginAndPassword implements the UserStore interface
func (m *MockUserStore) GetByLoginAndPassword(
	ctx context.Context,
	login, password string,
) (*domain.User, error) {
	if m.GetByLoginAndPasswordFn != nil {
		return m.GetByLoginAndPasswordFn(ctx, login, password)
	}

	user, exists := m.Users[login]
	if !exists || user.Password != password {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetAvatar implements the UserStore interface
func (m *MockUserStore) GetAvatar(ctx context.Context, login string) ([]byte, []byte, error) {
	if m.GetAvatarFn != nil {
		return m.GetAvatarFn(ctx, login)
	}

	user, exists := m.Users[login]
	if !exists {
		return nil, nil, store.ErrUserNotFound
	}
	return user.CropAvatar, user.FullAvatar, nil
}

// SetAvatar implements the UserStore interface
func (m *MockUserStore) SetAvatar(ctx context.Context, login string, crop, full []byte) error {
	if m.SetAvatarFn != nil {
		return m.SetAvatarFn(ctx, login, crop, full)
	}

	user, exists := m.Users[login]
	if !exists {
		return store.ErrUserNotFound
	}
	user.CropAvatar = crop
	user.FullAvatar = full
	return nil
}

// SearchByName implements the UserStore interface
func (m *MockUserStore) SearchByName(ctx context.Context, query string) ([]*domain.User, error) {
	if m.SearchByNameFn != nil {
		return m.SearchByNameFn(ctx, query)
	}

	needle := strings.ToLower(query)
	matches := make([]*domain.User, 0)
	for _, user := range m.Users {
		if strings.Contains(strings.ToLower(user.FirstName), needle) ||
			strings.Contains(strings.ToLower(user.LastName), needle) ||
			strings.Contains(strings.ToLower(user.Login), needle) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

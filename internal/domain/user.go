package domain

import (
	"errors"
	"time"
)

// Common validation errors
var (
	ErrEmptyLogin      = errors.New("login cannot be empty")
	ErrLoginTooLong    = errors.New("login must be at most 64 characters long")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrPasswordTooLong = errors.New("password must be at most 64 characters long")
	ErrEmptyFirstName  = errors.New("first name cannot be empty")
	ErrEmptyLastName   = errors.New("last name cannot be empty")
	ErrNameTooLong     = errors.New("name must be at most 64 characters long")
	ErrAboutTooLong    = errors.New("about must be at most 256 characters long")
)

// User represents a registered user. The About field is optional and empty
// when the user never filled it in. Avatar blobs are nil until the user
// uploads them; callers must treat nil and empty as equivalent.
type User struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	About            string    `json:"about,omitempty"`
	Password         string    `json:"-"` // Stored secret, never exposed in JSON
	Login            string    `json:"login"`
	CropAvatar       []byte    `json:"crop_avatar,omitempty"`
	FullAvatar       []byte    `json:"full_avatar,omitempty"`
	DateRegistration time.Time `json:"date_registration"`
}

// Registration carries the fields a new user supplies when signing up.
// The ID and registration timestamp are assigned by the store.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	About     string `json:"about,omitempty"`
	Password  string `json:"password"`
	Login     string `json:"login"`
}

// Validate checks the registration fields before they reach the store.
// Returns one of the sentinel validation errors above on failure.
func (r *Registration) Validate() error {
	if r.FirstName == "" {
		return ErrEmptyFirstName
	}
	if r.LastName == "" {
		return ErrEmptyLastName
	}
	if len(r.FirstName) > 64 || len(r.LastName) > 64 {
		return ErrNameTooLong
	}
	if len(r.About) > 256 {
		return ErrAboutTooLong
	}
	if r.Login == "" {
		return ErrEmptyLogin
	}
	if len(r.Login) > 64 {
		return ErrLoginTooLong
	}
	if r.Password == "" {
		return ErrEmptyPassword
	}
	if len(r.Password) > 64 {
		return ErrPasswordTooLong
	}
	return nil
}

// PopularUser is a read-only ranking projection: user attributes plus the
// number of incoming follow edges. It is computed at read time and never
// persisted.
type PopularUser struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	About            string    `json:"about,omitempty"`
	CropAvatar       []byte    `json:"crop_avatar,omitempty"`
	DateRegistration time.Time `json:"date_registration"`
	Followers        int64     `json:"followers"`
}

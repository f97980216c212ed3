package domain

import (
	"strings"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		FirstName: "Alice",
		LastName:  "Anderson",
		About:     "writes about distributed systems",
		Password:  "s3cret",
		Login:     "alice",
	}
}

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()

	reg := validRegistration()
	if err := reg.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// About is optional
	reg = validRegistration()
	reg.About = ""
	if err := reg.Validate(); err != nil {
		t.Errorf("Expected no error for empty about, got %v", err)
	}

	reg = validRegistration()
	reg.FirstName = ""
	if err := reg.Validate(); err != ErrEmptyFirstName {
		t.Errorf("Expected error %v, got %v", ErrEmptyFirstName, err)
	}

	reg = validRegistration()
	reg.LastName = ""
	if err := reg.Validate(); err != ErrEmptyLastName {
		t.Errorf("Expected error %v, got %v", ErrEmptyLastName, err)
	}

	reg = validRegistration()
	reg.FirstName = strings.Repeat("a", 65)
	if err := reg.Validate(); err != ErrNameTooLong {
		t.Errorf("Expected error %v, got %v", ErrNameTooLong, err)
	}

	reg = validRegistration()
	reg.About = strings.Repeat("a", 257)
	if err := reg.Validate(); err != ErrAboutTooLong {
		t.Errorf("Expected error %v, got %v", ErrAboutTooLong, err)
	}

	reg = validRegistration()
	reg.Login = ""
	if err := reg.Validate(); err != ErrEmptyLogin {
		t.Errorf("Expected error %v, got %v", ErrEmptyLogin, err)
	}

	reg = validRegistration()
	reg.Login = strings.Repeat("a", 65)
	if err := reg.Validate(); err != ErrLoginTooLong {
		t.Errorf("Expected error %v, got %v", ErrLoginTooLong, err)
	}

	reg = validRegistration()
	reg.Password = ""
	if err := reg.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	reg = validRegistration()
	reg.Password = strings.Repeat("a", 65)
	if err := reg.Validate(); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestRegistrationValidateBoundaries(t *testing.T) {
	t.Parallel()

	// Fields at exactly the limit are valid.
	reg := validRegistration()
	reg.FirstName = strings.Repeat("a", 64)
	reg.LastName = strings.Repeat("b", 64)
	reg.Login = strings.Repeat("c", 64)
	reg.Password = strings.Repeat("d", 64)
	reg.About = strings.Repeat("e", 256)
	if err := reg.Validate(); err != nil {
		t.Errorf("Expected no error at field length limits, got %v", err)
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a verified account.
// Accounts are created on first successful phone verification; profile
// fields are filled in afterwards and may be empty.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// PhoneNumber is the verified phone number (unique, E.164 format).
	PhoneNumber string

	// Name is the display name of the user.
	Name string

	// Username is the unique handle used for payment links.
	Username string

	// Email is the user's email address.
	Email string

	// ProfilePictureURL points at the user's avatar, if any.
	ProfilePictureURL string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user for the given phone number with a fresh ID.
func NewUser(phoneNumber string) *User {
	return &User{
		ID:          uuid.New().String(),
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().Unix(),
	}
}

package models

// Room represents a shared group of users splitting receipts together.
// Rooms are joined with the generated code plus the room password.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	// Name is the display name of the room.
	Name string

	// Code is the 6-character join code (A-Z, 0-9). Unique across rooms,
	// enforced by the storage layer.
	Code string

	// PasswordHash is the bcrypt hash of the room password.
	// Never serialized to API responses.
	PasswordHash string

	// OwnerID is the user who created the room.
	OwnerID string

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

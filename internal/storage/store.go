// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitroom/splitroom/internal/models"
)

// Sentinel errors surfaced by Store implementations. Services branch on
// these to recover (code collision retry) or report (duplicate join).
var (
	ErrNotFound        = errors.New("not found")
	ErrRoomCodeExists  = errors.New("room code already exists")
	ErrDuplicateMember = errors.New("user is already a member of the room")
	ErrPhoneExists     = errors.New("phone number already registered")
)

// Store defines the persistence operations the services depend on.
// The abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users

	// CreateUser persists a new user. Returns ErrPhoneExists if the phone
	// number is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByPhone retrieves a user by phone number. Returns ErrNotFound
	// if absent.
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Missing users are
	// omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns users ordered by creation time, paginated.
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)

	// UpdateUser updates a user's profile fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// Rooms

	// CreateRoom persists a new room and adds the owner as its first
	// member. Returns ErrRoomCodeExists if the code is taken; the caller
	// regenerates and retries.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoomByCode retrieves a room by join code.
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)

	// GetRoomByID retrieves a room by ID.
	GetRoomByID(ctx context.Context, id string) (*models.Room, error)

	// AddRoomMember records room membership. Returns ErrDuplicateMember if
	// the user already belongs to the room; the (room, user) uniqueness is
	// enforced by the schema, so concurrent joins cannot produce duplicates.
	AddRoomMember(ctx context.Context, roomID, userID string) error

	// ListRoomMembers returns the users in a room.
	ListRoomMembers(ctx context.Context, roomID string) ([]*models.User, error)

	// ListRoomsByUser returns the rooms a user belongs to.
	ListRoomsByUser(ctx context.Context, userID string) ([]*models.Room, error)

	// Receipts

	// CreateReceipt persists a receipt with its items and initial item
	// assignments in one transaction.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt with items and assignments.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// ListReceiptsByRoom returns the receipts attached to a room code.
	ListReceiptsByRoom(ctx context.Context, roomCode string) ([]*models.Receipt, error)

	// GetItem retrieves a single item with its assignments.
	GetItem(ctx context.Context, id string) (*models.Item, error)

	// SetItemUsers replaces an item's assigned users.
	SetItemUsers(ctx context.Context, itemID string, userIDs []string) error

	// Shares

	// ReplaceShares atomically swaps a receipt's persisted shares for the
	// given set. All-or-nothing: a failure leaves the previous set intact.
	ReplaceShares(ctx context.Context, receiptID string, shares []models.Share) error

	// ListShares returns the persisted shares for a receipt.
	ListShares(ctx context.Context, receiptID string) ([]models.Share, error)

	// Close releases any resources held by the store.
	Close() error
}

// Package service implements the application logic between the HTTP
// handlers and the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/calculator"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/roomcode"
	"github.com/splitroom/splitroom/internal/storage"
)

// maxCodeAttempts bounds the regenerate-and-retry loop on room code
// collisions. With 36^6 possible codes, exhausting this means something is
// badly wrong with the random source or the table is implausibly full.
const maxCodeAttempts = 5

var ErrCodeExhausted = errors.New("could not generate a unique room code")

// RoomService manages rooms, membership, and the room balance sheet.
type RoomService struct {
	store  storage.Store
	hasher *auth.PasswordHasher
	codes  *roomcode.Generator
}

// NewRoomService creates a RoomService with the given collaborators.
func NewRoomService(store storage.Store, hasher *auth.PasswordHasher, codes *roomcode.Generator) *RoomService {
	return &RoomService{store: store, hasher: hasher, codes: codes}
}

// CreateRoom creates a room owned by userID, hashing the password and
// generating a join code. Codes are probabilistically unique; the unique
// constraint on the code column is the actual guarantee, and a collision is
// recovered here by regenerating, never surfaced to the caller.
func (s *RoomService) CreateRoom(ctx context.Context, name, password, userID string) (*models.Room, error) {
	if err := s.hasher.Validate(password); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room := &models.Room{
			Name:         name,
			Code:         s.codes.Generate(),
			PasswordHash: hash,
			OwnerID:      userID,
		}
		err := s.store.CreateRoom(ctx, room)
		if errors.Is(err, storage.ErrRoomCodeExists) {
			slog.Warn("Room code collision, regenerating", "code", room.Code, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}
		slog.Info("Room created", "room_id", room.ID, "code", room.Code, "owner_id", userID)
		return room, nil
	}
	return nil, ErrCodeExhausted
}

// JoinRoom adds userID to the room identified by code after verifying the
// password. A repeat join returns storage.ErrDuplicateMember as a no-op;
// the membership table's composite key means concurrent joins cannot
// produce duplicate rows.
func (s *RoomService) JoinRoom(ctx context.Context, code, password, userID string) (*models.Room, error) {
	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Verify(room.PasswordHash, password); err != nil {
		return nil, err
	}
	if err := s.store.AddRoomMember(ctx, room.ID, userID); err != nil {
		return nil, err
	}
	slog.Info("User joined room", "room_id", room.ID, "code", room.Code, "user_id", userID)
	return room, nil
}

// GetRoomByCode fetches a room by its join code.
func (s *RoomService) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	return s.store.GetRoomByCode(ctx, code)
}

// ListMembers returns the users in the room identified by code.
func (s *RoomService) ListMembers(ctx context.Context, code string) ([]*models.User, error) {
	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.store.ListRoomMembers(ctx, room.ID)
}

// ListUserRooms returns the rooms a user belongs to.
func (s *RoomService) ListUserRooms(ctx context.Context, userID string) ([]*models.Room, error) {
	return s.store.ListRoomsByUser(ctx, userID)
}

// BalanceSheet aggregates every persisted receipt share in the room into a
// per-user total. A room with no receipts (or no settled shares) yields an
// empty map; that is a valid state for a fresh room, not an error.
func (s *RoomService) BalanceSheet(ctx context.Context, code string) (map[string]*models.UserCost, error) {
	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	receipts, err := s.store.ListReceiptsByRoom(ctx, room.Code)
	if err != nil {
		return nil, err
	}

	var shares []models.Share
	userIDSet := make(map[string]bool)
	for _, receipt := range receipts {
		receiptShares, err := s.store.ListShares(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		for _, share := range receiptShares {
			shares = append(shares, share)
			userIDSet[share.UserID] = true
		}
	}

	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return calculator.AggregateShares(shares, users), nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/storage"
)

const roomColumns = "id, name, code, password_hash, owner_id, created_at"

func scanRoom(row interface{ Scan(...any) error }) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Code,
		&room.PasswordHash,
		&room.OwnerID,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return room, nil
}

// CreateRoom persists a new room and adds the owner as its first member,
// in one transaction. The UNIQUE constraint on rooms.code closes the race
// between two clients generating the same code: the loser gets
// storage.ErrRoomCodeExists and regenerates.
func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rooms (`+roomColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		room.ID, room.Name, room.Code, room.PasswordHash, room.OwnerID, room.CreatedAt,
	)
	if isUniqueViolation(err, "rooms.code") {
		return storage.ErrRoomCodeExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO room_members (room_id, user_id) VALUES (?, ?)`,
		room.ID, room.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to add room owner as member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRoomByCode retrieves a room by its join code.
func (s *Store) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}
	return room, nil
}

// GetRoomByID retrieves a room by its ID.
func (s *Store) GetRoomByID(ctx context.Context, id string) (*models.Room, error) {
	room, err := scanRoom(s.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}
	return room, nil
}

// AddRoomMember records room membership. The composite primary key on
// (room_id, user_id) makes concurrent joins by the same user safe: the
// second insert fails with storage.ErrDuplicateMember instead of creating
// a duplicate row.
func (s *Store) AddRoomMember(ctx context.Context, roomID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO room_members (room_id, user_id) VALUES (?, ?)`,
		roomID, userID,
	)
	if isUniqueViolation(err, "room_members.room_id, room_members.user_id") {
		return storage.ErrDuplicateMember
	}
	if err != nil {
		return fmt.Errorf("failed to add room member: %w", err)
	}
	return nil
}

// ListRoomMembers returns the users in a room, ordered by join order.
func (s *Store) ListRoomMembers(ctx context.Context, roomID string) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.phone_number, u.name, u.username, u.email, u.profile_picture_url, u.created_at
		 FROM users u
		 JOIN room_members rm ON rm.user_id = u.id
		 WHERE rm.room_id = ?
		 ORDER BY rm.rowid`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list room members: %w", err)
	}
	defer rows.Close()

	var members []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// ListRoomsByUser returns the rooms a user belongs to, newest first.
func (s *Store) ListRoomsByUser(ctx context.Context, userID string) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.code, r.password_hash, r.owner_id, r.created_at
		 FROM rooms r
		 JOIN room_members rm ON rm.room_id = r.id
		 WHERE rm.user_id = ?
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by user: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}

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

// CreateReceipt persists a receipt with its items and initial item
// assignments in one transaction.
func (s *Store) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomCode any
	if receipt.RoomCode != "" {
		roomCode = receipt.RoomCode
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, name, room_code, owner_id, merchant_name, date, total_amount, tax_amount, tip_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.Name, roomCode, receipt.OwnerID, receipt.MerchantName,
		receipt.Date, receipt.TotalAmount, receipt.TaxAmount, receipt.TipAmount, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ReceiptID = receipt.ID
		if item.Quantity == 0 {
			item.Quantity = 1
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, receipt_id, name, quantity, cost) VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.ReceiptID, item.Name, item.Quantity, item.Cost,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, userID := range item.UserIDs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO item_users (item_id, user_id) VALUES (?, ?)`,
				item.ID, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReceipt retrieves a receipt by ID, including items and assignments.
func (s *Store) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var roomCode sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, room_code, owner_id, merchant_name, date, total_amount, tax_amount, tip_amount, created_at
		 FROM receipts WHERE id = ?`,
		id,
	).Scan(&receipt.ID, &receipt.Name, &roomCode, &receipt.OwnerID, &receipt.MerchantName,
		&receipt.Date, &receipt.TotalAmount, &receipt.TaxAmount, &receipt.TipAmount, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	if roomCode.Valid {
		receipt.RoomCode = roomCode.String
	}

	items, err := s.listItems(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

// ListReceiptsByRoom returns the receipts attached to a room code, with
// items and assignments, oldest first.
func (s *Store) ListReceiptsByRoom(ctx context.Context, roomCode string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM receipts WHERE room_code = ? ORDER BY created_at, id`,
		roomCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts by room: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipts: %w", err)
	}

	receipts := make([]*models.Receipt, 0, len(ids))
	for _, id := range ids {
		receipt, err := s.GetReceipt(ctx, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

// listItems loads a receipt's items with their assigned users.
func (s *Store) listItems(ctx context.Context, receiptID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, receipt_id, name, quantity, cost FROM items WHERE receipt_id = ? ORDER BY rowid`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Quantity, &item.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	for i := range items {
		userIDs, err := s.listItemUsers(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].UserIDs = userIDs
	}
	return items, nil
}

func (s *Store) listItemUsers(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM item_users WHERE item_id = ? ORDER BY user_id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return userIDs, nil
}

// GetItem retrieves a single item with its assignments.
func (s *Store) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item := &models.Item{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, receipt_id, name, quantity, cost FROM items WHERE id = ?`,
		id,
	).Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Quantity, &item.Cost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	userIDs, err := s.listItemUsers(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.UserIDs = userIDs
	return item, nil
}

// SetItemUsers replaces an item's assigned users in one transaction.
func (s *Store) SetItemUsers(ctx context.Context, itemID string, userIDs []string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_users WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("failed to clear item assignments: %w", err)
	}
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_users (item_id, user_id) VALUES (?, ?)`, itemID, userID); err != nil {
			return fmt.Errorf("failed to insert item assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

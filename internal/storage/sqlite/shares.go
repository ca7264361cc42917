package sqlite

import (
	"context"
	"fmt"

	"github.com/splitroom/splitroom/internal/models"
)

// ReplaceShares atomically swaps a receipt's persisted shares for the given
// set. Delete-then-insert inside one transaction gives the all-or-nothing
// guarantee for a settlement run: a failure rolls back to the previous set,
// never a torn mix of two assignment states.
func (s *Store) ReplaceShares(ctx context.Context, receiptID string, shares []models.Share) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shares WHERE receipt_id = ?`, receiptID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}

	for _, share := range shares {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shares (user_id, receipt_id, amount) VALUES (?, ?, ?)`,
			share.UserID, receiptID, share.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListShares returns the persisted shares for a receipt.
func (s *Store) ListShares(ctx context.Context, receiptID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, receipt_id, amount FROM shares WHERE receipt_id = ? ORDER BY user_id`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var share models.Share
		if err := rows.Scan(&share.UserID, &share.ReceiptID, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shares: %w", err)
	}
	return shares, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/splitroom/splitroom/internal/calculator"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/storage"
)

var ErrNegativeAmount = errors.New("monetary amounts must be non-negative")

// ReceiptService manages receipt entry, item assignment, and settlement.
type ReceiptService struct {
	store storage.Store

	// locks serializes settlement per receipt: concurrent assignment edits
	// re-settle under the same mutex, so the persisted share set always
	// reflects one complete assignment state (last write wins).
	locks sync.Map // receipt ID -> *sync.Mutex
}

// NewReceiptService creates a ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

func (s *ReceiptService) receiptLock(receiptID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(receiptID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// CreateReceipt validates and persists a receipt with its items, then runs
// an initial settlement for any items that already carry assignments.
func (s *ReceiptService) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.TotalAmount < 0 || receipt.TaxAmount < 0 || receipt.TipAmount < 0 {
		return ErrNegativeAmount
	}
	for _, item := range receipt.Items {
		if item.Cost < 0 {
			return ErrNegativeAmount
		}
	}

	if receipt.RoomCode != "" {
		if _, err := s.store.GetRoomByCode(ctx, receipt.RoomCode); err != nil {
			return fmt.Errorf("room %s: %w", receipt.RoomCode, err)
		}
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return err
	}
	slog.Info("Receipt created",
		"receipt_id", receipt.ID,
		"room_code", receipt.RoomCode,
		"merchant", receipt.MerchantName,
		"items", len(receipt.Items),
	)

	if _, err := s.Settle(ctx, receipt.ID); err != nil {
		return err
	}
	return nil
}

// GetReceipt fetches a receipt with its items and assignments.
func (s *ReceiptService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.store.GetReceipt(ctx, id)
}

// ListRoomReceipts returns the receipts attached to a room code.
func (s *ReceiptService) ListRoomReceipts(ctx context.Context, roomCode string) ([]*models.Receipt, error) {
	return s.store.ListReceiptsByRoom(ctx, roomCode)
}

// AssignItem replaces an item's assigned users and re-settles the receipt,
// so the persisted shares always track the current assignment state.
func (s *ReceiptService) AssignItem(ctx context.Context, itemID string, userIDs []string) (map[string]float64, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetItemUsers(ctx, itemID, userIDs); err != nil {
		return nil, err
	}
	return s.Settle(ctx, item.ReceiptID)
}

// Settle recomputes and persists the shares for a receipt, returning each
// user's settled total. Runs are serialized per receipt; repeated calls
// with unchanged inputs persist identical shares.
//
// Shares are replaced all-or-nothing: a storage failure leaves the
// previously persisted set intact.
func (s *ReceiptService) Settle(ctx context.Context, receiptID string) (map[string]float64, error) {
	lock := s.receiptLock(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if drift, ok := calculator.Drift(receipt); !ok {
		// Soft expectation only: surfaced as a warning, never a rejection.
		slog.Warn("Itemized subtotal does not reconcile with receipt totals",
			"receipt_id", receipt.ID,
			"drift", drift,
		)
	}

	totals := calculator.SettleReceipt(receipt)

	shares := make([]models.Share, 0, len(totals))
	for userID, total := range totals {
		if total > 0 {
			shares = append(shares, models.Share{UserID: userID, ReceiptID: receipt.ID, Amount: total})
		}
	}
	if err := s.store.ReplaceShares(ctx, receipt.ID, shares); err != nil {
		return nil, err
	}

	slog.Debug("Receipt settled", "receipt_id", receipt.ID, "shares", len(shares))
	return totals, nil
}

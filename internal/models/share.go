package models

// Share is a user's settled portion of one receipt, including their
// proportional part of tax and tip. Keyed by (UserID, ReceiptID).
//
// Shares are derived state: they are recomputed and replaced wholesale by a
// settlement run whenever item assignments change, and are never written
// directly by a user action.
type Share struct {
	UserID    string
	ReceiptID string

	// Amount is the user's settled share of the receipt total, rounded to
	// currency precision.
	Amount float64
}

// UserCost is one row of a room balance sheet: a user's aggregate settled
// share across every receipt in the room.
type UserCost struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	TotalCost float64 `json:"total_cost"`
}

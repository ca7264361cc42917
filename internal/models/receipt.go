package models

// Receipt represents a single purchase to be split.
// The sum of item costs is expected to reconcile with
// TotalAmount - TaxAmount - TipAmount, but this is a soft expectation:
// a mismatch is logged as drift, never rejected.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Name is a human-readable label for the receipt.
	Name string

	// RoomCode is the code of the room this receipt belongs to.
	// Empty for unattached receipts.
	RoomCode string

	// OwnerID is the user who entered the receipt.
	OwnerID string

	// MerchantName is where the purchase happened.
	MerchantName string

	// Date is the purchase date as entered (free-form).
	Date string

	// TotalAmount is the full amount paid, including tax and tip.
	TotalAmount float64

	// TaxAmount is the tax portion of the total.
	TaxAmount float64

	// TipAmount is the tip portion of the total.
	TipAmount float64

	// Items are the line entries on the receipt.
	Items []Item

	// CreatedAt is the Unix timestamp when the receipt was created.
	CreatedAt int64
}

// Item represents a single line entry on a receipt.
// Items can be assigned to any subset of room members; the cost is divided
// evenly among assigned users. Quantity is display-only and takes no part
// in the split math.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// ReceiptID is the receipt this item belongs to.
	ReceiptID string

	// Name is the item description (e.g., "Pad Thai").
	Name string

	// Quantity is informational only.
	Quantity int64

	// Cost is the total cost of this line.
	Cost float64

	// UserIDs are the users assigned to this item. An empty set is a
	// valid-but-unsettled state: the cost is excluded from settlement.
	UserIDs []string
}

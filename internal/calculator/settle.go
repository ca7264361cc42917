package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitroom/splitroom/internal/models"
)

// driftTolerance is the reconciliation slack, one cent, under which the
// itemized subtotal and the stated receipt amounts are considered to agree.
const driftTolerance = 0.01

// SettleReceipt computes each user's share of a receipt's total cost,
// including a proportional portion of tax and tip.
//
// Each item's cost is split evenly among its assigned users, then
// tax + tip is distributed in proportion to each user's itemized subtotal:
// users who picked costlier items absorb proportionally more of it.
// Each final total is rounded to 2 decimal places (half away from zero).
//
// Because rounding is per-user, the sum of the returned totals may differ
// from subtotal + tax + tip by up to one cent per user. That drift is
// accepted, not corrected: a remainder reconciliation would make the result
// depend on user ordering and break settlement idempotence.
//
// A receipt with no items, or whose items carry no assigned users, settles
// to an empty map. This is a valid transient state, not an error.
func SettleReceipt(receipt *models.Receipt) map[string]float64 {
	subtotals := make(map[string]float64)
	for _, item := range receipt.Items {
		for userID, share := range AllocateItem(item) {
			subtotals[userID] += share
		}
	}

	itemized := ItemizedSubtotal(receipt.Items)
	if itemized == 0 {
		// Nothing to distribute tax/tip against.
		return map[string]float64{}
	}

	extra := receipt.TaxAmount + receipt.TipAmount
	totals := make(map[string]float64, len(subtotals))
	for userID, subtotal := range subtotals {
		total := subtotal + (subtotal/itemized)*extra
		totals[userID] = RoundCurrency(total)
	}
	return totals
}

// ItemizedSubtotal sums the item costs on a receipt.
func ItemizedSubtotal(items []models.Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Cost
	}
	return sum
}

// Drift reports how far the itemized subtotal deviates from the receipt's
// stated pre-tax amount (TotalAmount - TaxAmount - TipAmount), and whether
// the deviation exceeds the one-cent tolerance. Callers surface this as a
// warning; it never blocks settlement.
func Drift(receipt *models.Receipt) (drift float64, ok bool) {
	stated := receipt.TotalAmount - receipt.TaxAmount - receipt.TipAmount
	drift = ItemizedSubtotal(receipt.Items) - stated
	if drift < 0 {
		return drift, -drift <= driftTolerance
	}
	return drift, drift <= driftTolerance
}

// RoundCurrency rounds an amount to 2 decimal places, half away from zero.
func RoundCurrency(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

package calculator

import (
	"math"
	"testing"

	"github.com/splitroom/splitroom/internal/models"
)

func TestAllocateItem(t *testing.T) {
	tests := []struct {
		name string
		item models.Item
		want map[string]float64
	}{
		{
			name: "even split among three users",
			item: models.Item{Cost: 30.0, UserIDs: []string{"u1", "u2", "u3"}},
			want: map[string]float64{"u1": 10.0, "u2": 10.0, "u3": 10.0},
		},
		{
			name: "single user takes full cost",
			item: models.Item{Cost: 12.5, UserIDs: []string{"u1"}},
			want: map[string]float64{"u1": 12.5},
		},
		{
			name: "no assigned users yields empty map",
			item: models.Item{Cost: 99.0},
			want: map[string]float64{},
		},
		{
			name: "zero cost splits to zero shares",
			item: models.Item{Cost: 0, UserIDs: []string{"u1", "u2"}},
			want: map[string]float64{"u1": 0, "u2": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateItem(tt.item)
			if len(got) != len(tt.want) {
				t.Fatalf("AllocateItem() returned %d shares, want %d", len(got), len(tt.want))
			}
			var sum float64
			for userID, want := range tt.want {
				if math.Abs(got[userID]-want) > 1e-9 {
					t.Errorf("share[%s] = %v, want %v", userID, got[userID], want)
				}
				sum += got[userID]
			}
			if len(tt.item.UserIDs) > 0 && math.Abs(sum-tt.item.Cost) > 1e-9 {
				t.Errorf("shares sum to %v, want item cost %v", sum, tt.item.Cost)
			}
		})
	}
}

func TestSettleReceipt(t *testing.T) {
	tests := []struct {
		name    string
		receipt models.Receipt
		want    map[string]float64
	}{
		{
			// Itemized subtotal = 40; U1 raw = 15 + 10 = 25, U2 raw = 15.
			// Tax+tip = 10 distributed proportionally:
			// U1 += 25/40*10 = 6.25 -> 31.25, U2 += 15/40*10 = 3.75 -> 18.75.
			name: "proportional tax and tip distribution",
			receipt: models.Receipt{
				TotalAmount: 50.0,
				TaxAmount:   4.0,
				TipAmount:   6.0,
				Items: []models.Item{
					{Name: "ItemA", Cost: 30.0, UserIDs: []string{"u1", "u2"}},
					{Name: "ItemB", Cost: 10.0, UserIDs: []string{"u1"}},
				},
			},
			want: map[string]float64{"u1": 31.25, "u2": 18.75},
		},
		{
			name: "no items settles to empty",
			receipt: models.Receipt{
				TotalAmount: 20.0,
				TaxAmount:   2.0,
			},
			want: map[string]float64{},
		},
		{
			name: "zero itemized subtotal settles to empty",
			receipt: models.Receipt{
				TotalAmount: 5.0,
				TipAmount:   5.0,
				Items: []models.Item{
					{Name: "Comped", Cost: 0, UserIDs: []string{"u1"}},
				},
			},
			want: map[string]float64{},
		},
		{
			name: "unassigned item excluded from settlement",
			receipt: models.Receipt{
				TotalAmount: 30.0,
				Items: []models.Item{
					{Name: "Claimed", Cost: 20.0, UserIDs: []string{"u1"}},
					{Name: "Unclaimed", Cost: 10.0},
				},
			},
			// Tax+tip = 0 so u1 owes exactly their subtotal; the unclaimed
			// 10.00 contributes to nobody's total.
			want: map[string]float64{"u1": 20.0},
		},
		{
			name: "totals rounded to currency precision",
			receipt: models.Receipt{
				TotalAmount: 11.0,
				TaxAmount:   1.0,
				Items: []models.Item{
					{Name: "Shared", Cost: 10.0, UserIDs: []string{"u1", "u2", "u3"}},
				},
			},
			// Raw totals are 11/3 = 3.6666...; rounded half away from zero.
			want: map[string]float64{"u1": 3.67, "u2": 3.67, "u3": 3.67},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettleReceipt(&tt.receipt)
			if len(got) != len(tt.want) {
				t.Fatalf("SettleReceipt() returned %d shares, want %d: %v", len(got), len(tt.want), got)
			}
			for userID, want := range tt.want {
				if math.Abs(got[userID]-want) > 1e-9 {
					t.Errorf("total[%s] = %v, want %v", userID, got[userID], want)
				}
			}
		})
	}
}

// TestSettleReceiptDriftBound checks that the sum of rounded user totals
// stays within one cent per user of subtotal + tax + tip.
func TestSettleReceiptDriftBound(t *testing.T) {
	receipt := models.Receipt{
		TotalAmount: 107.53,
		TaxAmount:   5.03,
		TipAmount:   2.50,
		Items: []models.Item{
			{Name: "A", Cost: 33.33, UserIDs: []string{"u1", "u2", "u3"}},
			{Name: "B", Cost: 26.67, UserIDs: []string{"u2", "u3"}},
			{Name: "C", Cost: 40.00, UserIDs: []string{"u1", "u2", "u3", "u4"}},
		},
	}

	totals := SettleReceipt(&receipt)
	var sum float64
	for _, total := range totals {
		sum += total
	}

	expected := ItemizedSubtotal(receipt.Items) + receipt.TaxAmount + receipt.TipAmount
	bound := float64(len(totals)) * 0.01
	if math.Abs(sum-expected) > bound {
		t.Errorf("settled totals sum to %v, want %v within %v", sum, expected, bound)
	}
}

// TestSettleReceiptIdempotent checks that settling the same receipt twice
// produces identical results.
func TestSettleReceiptIdempotent(t *testing.T) {
	receipt := models.Receipt{
		TotalAmount: 50.0,
		TaxAmount:   4.0,
		TipAmount:   6.0,
		Items: []models.Item{
			{Name: "ItemA", Cost: 30.0, UserIDs: []string{"u1", "u2"}},
			{Name: "ItemB", Cost: 10.0, UserIDs: []string{"u1"}},
		},
	}

	first := SettleReceipt(&receipt)
	second := SettleReceipt(&receipt)
	if len(first) != len(second) {
		t.Fatalf("repeat settlement changed share count: %d vs %d", len(first), len(second))
	}
	for userID, total := range first {
		if second[userID] != total {
			t.Errorf("repeat settlement changed total[%s]: %v vs %v", userID, total, second[userID])
		}
	}
}

func TestDrift(t *testing.T) {
	tests := []struct {
		name      string
		receipt   models.Receipt
		wantDrift float64
		wantOK    bool
	}{
		{
			name: "reconciled receipt",
			receipt: models.Receipt{
				TotalAmount: 50.0, TaxAmount: 4.0, TipAmount: 6.0,
				Items: []models.Item{{Cost: 30.0}, {Cost: 10.0}},
			},
			wantDrift: 0,
			wantOK:    true,
		},
		{
			name: "items exceed stated subtotal",
			receipt: models.Receipt{
				TotalAmount: 40.0, TaxAmount: 0, TipAmount: 0,
				Items: []models.Item{{Cost: 45.0}},
			},
			wantDrift: 5.0,
			wantOK:    false,
		},
		{
			name: "sub-cent rounding noise tolerated",
			receipt: models.Receipt{
				TotalAmount: 10.005, TaxAmount: 0, TipAmount: 0,
				Items: []models.Item{{Cost: 10.0}},
			},
			wantDrift: -0.005,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drift, ok := Drift(&tt.receipt)
			if math.Abs(drift-tt.wantDrift) > 1e-9 {
				t.Errorf("Drift() = %v, want %v", drift, tt.wantDrift)
			}
			if ok != tt.wantOK {
				t.Errorf("Drift() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

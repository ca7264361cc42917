// Package calculator implements the cost-splitting math: per-item even
// allocation, proportional tax and tip distribution per receipt, and
// per-room aggregation of settled shares. Every function is a pure
// computation over data already in memory.
package calculator

import (
	"github.com/splitroom/splitroom/internal/models"
)

// AllocateItem computes each assigned user's raw share of a single item.
// The cost is split evenly among the assigned users; an item with no
// assigned users yields an empty map and is excluded from settlement.
// No rounding happens at this level: currency precision is applied once,
// at the receipt settlement step.
func AllocateItem(item models.Item) map[string]float64 {
	shares := make(map[string]float64, len(item.UserIDs))
	if len(item.UserIDs) == 0 {
		return shares
	}

	perUser := item.Cost / float64(len(item.UserIDs))
	for _, userID := range item.UserIDs {
		// A user listed twice on the same item still owes two portions;
		// storage prevents duplicates, but the math is well-defined either way.
		shares[userID] += perUser
	}
	return shares
}

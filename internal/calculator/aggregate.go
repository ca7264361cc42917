package calculator

import (
	"github.com/splitroom/splitroom/internal/models"
)

// AggregateShares folds persisted receipt shares into a per-user balance
// sheet for a room. Display metadata is taken from the users map on first
// encounter; shares for users missing from the map still count, with empty
// metadata, so money never silently disappears from the sheet.
//
// The result reports each user's total spent share. Netting balances
// between users ("who owes whom") is deliberately not done here.
func AggregateShares(shares []models.Share, users map[string]*models.User) map[string]*models.UserCost {
	costs := make(map[string]*models.UserCost)
	for _, share := range shares {
		cost, seen := costs[share.UserID]
		if !seen {
			cost = &models.UserCost{UserID: share.UserID}
			if user, found := users[share.UserID]; found {
				cost.Name = user.Name
				cost.Username = user.Username
			}
			costs[share.UserID] = cost
		}
		cost.TotalCost += share.Amount
	}
	for _, cost := range costs {
		cost.TotalCost = RoundCurrency(cost.TotalCost)
	}
	return costs
}

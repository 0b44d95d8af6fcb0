package authz

import (
	"context"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// Subject kinds governed by the gate. The mapping below must stay total:
// every kind a handler can name has exactly one policy.
const (
	KindItem        = "item"
	KindCategory    = "category"
	KindRoom        = "room"
	KindTransaction = "transaction"
	KindUser        = "user"
	KindActivity    = "activity"
)

// Gate is the static dispatch table from entity kind to policy.
type Gate struct {
	policies map[string]Policy
}

func NewGate(ch *Checker) *Gate {
	return &Gate{
		policies: map[string]Policy{
			KindItem:        NewItemPolicy(ch),
			KindCategory:    NewCategoryPolicy(ch),
			KindRoom:        NewRoomPolicy(ch),
			KindTransaction: NewTransactionPolicy(ch),
			KindUser:        NewUserPolicy(ch),
			KindActivity:    NewActivityPolicy(ch),
		},
	}
}

// Authorize answers "may actor perform action on kind [instance]". Unknown
// kinds resolve to false rather than panicking: a miss here is a programming
// error surfaced as a denial, never a crash in the request path.
func (g *Gate) Authorize(ctx context.Context, actor *models.User, kind string, action Action, subject any) (bool, error) {
	policy, ok := g.policies[kind]
	if !ok {
		return false, nil
	}
	return policy.Allows(ctx, actor, action, subject)
}

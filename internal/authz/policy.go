package authz

import (
	"context"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionViewAny     Action = "viewAny"
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "forceDelete"
)

// Policy decides whether an actor may perform an action on an entity kind.
// Denial is a boolean, never an error; errors are reserved for resolution
// failures (store/cache unreachable).
type Policy interface {
	Allows(ctx context.Context, actor *models.User, action Action, subject any) (bool, error)
}

// ===============================
// Generic resource policy
// ===============================

// resourcePolicy maps the standard action set onto "<verb> <plural-noun>"
// permission names. Instances are accepted for interface symmetry but not
// consulted; row-level rules live in the per-entity policies below.
type resourcePolicy struct {
	checker *Checker
	noun    string
}

func (p resourcePolicy) Allows(ctx context.Context, actor *models.User, action Action, _ any) (bool, error) {
	switch action {
	case ActionViewAny, ActionView:
		return p.checker.HasPermission(ctx, actor, "view "+p.noun)
	case ActionCreate:
		return p.checker.HasPermission(ctx, actor, "create "+p.noun)
	case ActionUpdate:
		return p.checker.HasPermission(ctx, actor, "edit "+p.noun)
	case ActionDelete:
		return p.checker.HasPermission(ctx, actor, "delete "+p.noun)
	default:
		return false, nil
	}
}

func NewItemPolicy(ch *Checker) Policy     { return resourcePolicy{checker: ch, noun: "items"} }
func NewCategoryPolicy(ch *Checker) Policy { return resourcePolicy{checker: ch, noun: "categories"} }
func NewRoomPolicy(ch *Checker) Policy     { return resourcePolicy{checker: ch, noun: "rooms"} }

// ===============================
// Stock transactions
// ===============================

// TransactionPolicy extends the standard set with restore/forceDelete for
// soft-deleted transactions, mapped to the edit/delete permissions.
type TransactionPolicy struct {
	base resourcePolicy
}

func NewTransactionPolicy(ch *Checker) *TransactionPolicy {
	return &TransactionPolicy{base: resourcePolicy{checker: ch, noun: "transactions"}}
}

func (p *TransactionPolicy) Allows(ctx context.Context, actor *models.User, action Action, subject any) (bool, error) {
	switch action {
	case ActionRestore:
		return p.base.checker.HasPermission(ctx, actor, "edit transactions")
	case ActionForceDelete:
		return p.base.checker.HasPermission(ctx, actor, "delete transactions")
	default:
		return p.base.Allows(ctx, actor, action, subject)
	}
}

// ===============================
// Users
// ===============================

// UserPolicy adds two special rules: an admin-role pre-check that
// short-circuits every action, and self-delete prevention.
type UserPolicy struct {
	base resourcePolicy
}

func NewUserPolicy(ch *Checker) *UserPolicy {
	return &UserPolicy{base: resourcePolicy{checker: ch, noun: "users"}}
}

// before returns a definite decision or nil to abstain. It runs ahead of the
// per-action rules and wins outright when definite.
func (p *UserPolicy) before(ctx context.Context, actor *models.User) (*bool, error) {
	if actor == nil {
		return nil, nil
	}

	isAdmin, err := p.base.checker.HasRole(ctx, actor, RoleAdmin)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		allow := true
		return &allow, nil
	}
	return nil, nil
}

func (p *UserPolicy) Allows(ctx context.Context, actor *models.User, action Action, subject any) (bool, error) {
	if decision, err := p.before(ctx, actor); err != nil {
		return false, err
	} else if decision != nil {
		return *decision, nil
	}

	if action == ActionDelete {
		if target, ok := subject.(*models.User); ok && actor != nil && target != nil && target.ID == actor.ID {
			return false, nil
		}
	}

	return p.base.Allows(ctx, actor, action, subject)
}

// ===============================
// Activity log (view-only)
// ===============================

type ActivityPolicy struct {
	checker *Checker
}

func NewActivityPolicy(ch *Checker) *ActivityPolicy {
	return &ActivityPolicy{checker: ch}
}

func (p *ActivityPolicy) Allows(ctx context.Context, actor *models.User, action Action, _ any) (bool, error) {
	switch action {
	case ActionViewAny, ActionView:
		return p.checker.HasPermission(ctx, actor, "view activities")
	default:
		return false, nil
	}
}

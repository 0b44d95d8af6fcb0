package authz

import (
	"context"

	"github.com/stockpilot/inventory-admin/internal/models"
)

const RoleAdmin = "admin"

// Checker resolves whether an actor holds a named capability. Resolution is
// the union of direct grants and every granted-through-role permission.
// Unknown permission names simply resolve to false.
type Checker struct {
	store Store
	cache Cache
}

func NewChecker(store Store, cache Cache) *Checker {
	return &Checker{store: store, cache: cache}
}

func (c *Checker) HasPermission(ctx context.Context, actor *models.User, name string) (bool, error) {
	if actor == nil {
		return false, nil
	}

	perms, err := c.permissionsFor(ctx, actor.ID)
	if err != nil {
		return false, err
	}

	for _, p := range perms {
		if p == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *Checker) HasRole(ctx context.Context, actor *models.User, role string) (bool, error) {
	if actor == nil {
		return false, nil
	}

	names, err := c.store.RoleNames(ctx, actor.ID)
	if err != nil {
		return false, err
	}

	for _, n := range names {
		if n == role {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate must be called after every role/permission mutation.
func (c *Checker) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Invalidate(ctx)
}

func (c *Checker) permissionsFor(ctx context.Context, userID uint) ([]string, error) {
	if c.cache != nil {
		if perms, ok, err := c.cache.Get(ctx, userID); err == nil && ok {
			return perms, nil
		}
	}

	direct, err := c.store.DirectPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	viaRoles, err := c.store.RolePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(direct)+len(viaRoles))
	perms := make([]string, 0, len(direct)+len(viaRoles))
	for _, p := range append(direct, viaRoles...) {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}

	if c.cache != nil {
		// Best effort: a cache write failure must not fail the check.
		_ = c.cache.Set(ctx, userID, perms)
	}

	return perms, nil
}

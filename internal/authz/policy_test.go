package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/inventory-admin/internal/models"
)

func newGate(store *fakeStore) *Gate {
	return NewGate(NewChecker(store, nil))
}

func TestResourcePolicyPermissionMapping(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.direct[1] = []string{"view items", "edit items"}

	gate := newGate(store)

	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"viewAny with view grant", ActionViewAny, true},
		{"view with view grant", ActionView, true},
		{"create without grant", ActionCreate, false},
		{"update with edit grant", ActionUpdate, true},
		{"delete without grant", ActionDelete, false},
		{"unknown action denied", Action("publish"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := gate.Authorize(ctx, actor(1), KindItem, tc.action, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestItemPolicyCreateThroughRole(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	gate := newGate(store)

	ok, err := gate.Authorize(ctx, actor(4), KindItem, ActionCreate, nil)
	require.NoError(t, err)
	assert.False(t, ok, "no grant, no create")

	store.direct[4] = []string{"create items"}
	ok, err = gate.Authorize(ctx, actor(4), KindItem, ActionCreate, nil)
	require.NoError(t, err)
	assert.True(t, ok, "direct grant")

	store.direct[4] = nil
	store.rolePerms[4] = []string{"create items"}
	ok, err = gate.Authorize(ctx, actor(4), KindItem, ActionCreate, nil)
	require.NoError(t, err)
	assert.True(t, ok, "grant through role")
}

func TestTransactionPolicyExtendedActions(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.direct[2] = []string{"edit transactions"}

	gate := newGate(store)

	ok, err := gate.Authorize(ctx, actor(2), KindTransaction, ActionRestore, nil)
	require.NoError(t, err)
	assert.True(t, ok, "restore maps to edit transactions")

	ok, err = gate.Authorize(ctx, actor(2), KindTransaction, ActionForceDelete, nil)
	require.NoError(t, err)
	assert.False(t, ok, "forceDelete maps to delete transactions")

	store.direct[2] = append(store.direct[2], "delete transactions")
	ok, err = gate.Authorize(ctx, actor(2), KindTransaction, ActionForceDelete, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserPolicySelfDeleteForbidden(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.direct[5] = []string{"delete users"}

	gate := newGate(store)
	self := actor(5)

	ok, err := gate.Authorize(ctx, self, KindUser, ActionDelete, self)
	require.NoError(t, err)
	assert.False(t, ok, "self-delete stays forbidden even with the delete users grant")

	other := actor(6)
	ok, err = gate.Authorize(ctx, self, KindUser, ActionDelete, other)
	require.NoError(t, err)
	assert.True(t, ok, "deleting someone else works with the grant")
}

func TestUserPolicyAdminBypass(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.roles[8] = []string{RoleAdmin}

	gate := newGate(store)
	admin := actor(8)

	for _, action := range []Action{ActionViewAny, ActionView, ActionCreate, ActionUpdate, ActionDelete} {
		ok, err := gate.Authorize(ctx, admin, KindUser, action, actor(9))
		require.NoError(t, err)
		assert.True(t, ok, "admin role bypasses %s without the named permission", action)
	}
}

func TestUserPolicyBeforeHookAbstains(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.roles[3] = []string{"staff"}
	store.direct[3] = []string{"view users"}

	gate := newGate(store)

	// Non-admin: the hook abstains and the per-action rule decides.
	ok, err := gate.Authorize(ctx, actor(3), KindUser, ActionView, actor(4))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Authorize(ctx, actor(3), KindUser, ActionUpdate, actor(4))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivityPolicyViewOnly(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.direct[1] = []string{"view activities"}

	gate := newGate(store)

	ok, err := gate.Authorize(ctx, actor(1), KindActivity, ActionViewAny, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		ok, err := gate.Authorize(ctx, actor(1), KindActivity, action, nil)
		require.NoError(t, err)
		assert.False(t, ok, "activity log is view-only: %s must be denied", action)
	}
}

func TestGateUnknownKindDenied(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.roles[1] = []string{RoleAdmin}

	gate := newGate(store)

	ok, err := gate.Authorize(ctx, actor(1), "widget", ActionView, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateNilActorDeniedEverywhere(t *testing.T) {
	ctx := context.Background()
	gate := newGate(newFakeStore())

	for _, kind := range []string{KindItem, KindCategory, KindRoom, KindTransaction, KindUser, KindActivity} {
		ok, err := gate.Authorize(ctx, nil, kind, ActionViewAny, nil)
		require.NoError(t, err)
		assert.False(t, ok, "unauthenticated actor denied on %s", kind)
	}
}

func TestUserPolicySelfDeleteDirect(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.direct[5] = []string{"delete users"}

	policy := NewUserPolicy(NewChecker(store, nil))
	self := &models.User{ID: 5}

	ok, err := policy.Allows(ctx, self, ActionDelete, self)
	require.NoError(t, err)
	assert.False(t, ok)
}

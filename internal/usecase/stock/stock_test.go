package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	domain "github.com/stockpilot/inventory-admin/internal/domain/stock"
	"github.com/stockpilot/inventory-admin/internal/httperr"
	"github.com/stockpilot/inventory-admin/internal/models"
)

// ===============================
// Fake repository
// ===============================

type logCall struct {
	event   string
	subject activitylog.Subject
	old     map[string]any
}

type fakeRepo struct {
	items map[uint]*models.Item
	rooms map[uint]*models.Room

	created []*models.StockTransaction
	logs    []logCall

	rolledBack bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: make(map[uint]*models.Item),
		rooms: make(map[uint]*models.Room),
	}
}

func (r *fakeRepo) InTx(_ context.Context, fn func(domain.Repository) error) error {
	if err := fn(r); err != nil {
		r.rolledBack = true
		return err
	}
	return nil
}

func (r *fakeRepo) GetItemForUpdate(_ context.Context, itemID uint) (*models.Item, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) SaveItem(_ context.Context, item *models.Item) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeRepo) GetRoom(_ context.Context, roomID uint) (*models.Room, error) {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return room, nil
}

func (r *fakeRepo) CreateTransaction(_ context.Context, txn *models.StockTransaction) error {
	txn.ID = uint(len(r.created) + 1)
	r.created = append(r.created, txn)
	return nil
}

func (r *fakeRepo) LogCreated(_ context.Context, _ *models.User, subject activitylog.Subject) error {
	r.logs = append(r.logs, logCall{event: activitylog.EventCreated, subject: subject})
	return nil
}

func (r *fakeRepo) LogUpdated(_ context.Context, _ *models.User, subject activitylog.Subject, old map[string]any) error {
	r.logs = append(r.logs, logCall{event: activitylog.EventUpdated, subject: subject, old: old})
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func seedItem(r *fakeRepo, id uint, qty int, roomID uint) {
	r.items[id] = &models.Item{ID: id, Name: "Bolt", SKU: "BLT-1", Quantity: qty, RoomID: roomID}
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = &models.Room{ID: roomID, Name: "Main"}
	}
}

func businessCode(t *testing.T, err error) string {
	t.Helper()
	code, ok := httperr.BusinessCode(err)
	require.True(t, ok, "expected a business error, got %v", err)
	return code
}

// ===============================
// Receive
// ===============================

func TestReceiveStockAddsQuantity(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 10, 5)

	uc := NewReceiveStock(repo)
	actor := &models.User{ID: 3}

	txn, err := uc.Execute(context.Background(), actor, ReceiveStockInput{
		ItemID:   1,
		Quantity: 4,
		Note:     "restock",
	})
	require.NoError(t, err)

	assert.Equal(t, 14, repo.items[1].Quantity)

	require.NotNil(t, txn)
	assert.Equal(t, string(domain.TypeIn), txn.Type)
	assert.Equal(t, 4, txn.Quantity)
	assert.NotEmpty(t, txn.Reference)
	require.NotNil(t, txn.ToRoomID)
	assert.Equal(t, uint(5), *txn.ToRoomID)
	assert.Nil(t, txn.FromRoomID)
	require.NotNil(t, txn.UserID)
	assert.Equal(t, uint(3), *txn.UserID)

	// One created entry for the transaction, one updated entry for the item.
	require.Len(t, repo.logs, 2)
	assert.Equal(t, activitylog.EventCreated, repo.logs[0].event)
	assert.Equal(t, "transaction", repo.logs[0].subject.LogName())
	assert.Equal(t, activitylog.EventUpdated, repo.logs[1].event)
	assert.Equal(t, "item", repo.logs[1].subject.LogName())
	assert.Equal(t, float64(10), repo.logs[1].old["quantity"], "old snapshot is pre-mutation")
}

func TestReceiveStockIntoExplicitRoom(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 0, 5)
	repo.rooms[9] = &models.Room{ID: 9, Name: "Annex"}

	uc := NewReceiveStock(repo)

	txn, err := uc.Execute(context.Background(), nil, ReceiveStockInput{
		ItemID:   1,
		RoomID:   9,
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(9), repo.items[1].RoomID)
	require.NotNil(t, txn.ToRoomID)
	assert.Equal(t, uint(9), *txn.ToRoomID)
	assert.Nil(t, txn.UserID, "no actor, no causer on the row")
}

func TestReceiveStockRejectsBadQuantity(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 10, 5)

	uc := NewReceiveStock(repo)

	for _, qty := range []int{0, -3} {
		_, err := uc.Execute(context.Background(), nil, ReceiveStockInput{ItemID: 1, Quantity: qty})
		assert.Equal(t, "invalid_quantity", businessCode(t, err))
	}

	assert.Equal(t, 10, repo.items[1].Quantity, "rejected input must not touch stock")
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.logs)
}

func TestReceiveStockUnknownItem(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiveStock(repo)

	_, err := uc.Execute(context.Background(), nil, ReceiveStockInput{ItemID: 99, Quantity: 1})
	assert.Equal(t, "item_not_found", businessCode(t, err))
	assert.True(t, repo.rolledBack)
}

// ===============================
// Issue
// ===============================

func TestIssueStockSubtractsQuantity(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 10, 5)

	uc := NewIssueStock(repo)
	actor := &models.User{ID: 7}

	txn, err := uc.Execute(context.Background(), actor, IssueStockInput{
		ItemID:   1,
		Quantity: 6,
		Note:     "shipped",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, repo.items[1].Quantity)

	assert.Equal(t, string(domain.TypeOut), txn.Type)
	require.NotNil(t, txn.FromRoomID)
	assert.Equal(t, uint(5), *txn.FromRoomID)
	assert.Nil(t, txn.ToRoomID)

	require.Len(t, repo.logs, 2)
	assert.Equal(t, float64(10), repo.logs[1].old["quantity"])
}

func TestIssueStockInsufficient(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 3, 5)

	uc := NewIssueStock(repo)

	_, err := uc.Execute(context.Background(), nil, IssueStockInput{ItemID: 1, Quantity: 4})
	assert.Equal(t, "insufficient_stock", businessCode(t, err))

	assert.Equal(t, 3, repo.items[1].Quantity)
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.logs)
	assert.True(t, repo.rolledBack)
}

func TestIssueStockExactQuantity(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 4, 5)

	uc := NewIssueStock(repo)

	_, err := uc.Execute(context.Background(), nil, IssueStockInput{ItemID: 1, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.items[1].Quantity)
}

// ===============================
// Transfer
// ===============================

func TestTransferStockMovesItem(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 8, 5)
	repo.rooms[9] = &models.Room{ID: 9, Name: "Annex"}

	uc := NewTransferStock(repo)

	txn, err := uc.Execute(context.Background(), nil, TransferStockInput{ItemID: 1, ToRoomID: 9})
	require.NoError(t, err)

	assert.Equal(t, uint(9), repo.items[1].RoomID)
	assert.Equal(t, 8, repo.items[1].Quantity, "quantity moves untouched")

	assert.Equal(t, string(domain.TypeTransfer), txn.Type)
	require.NotNil(t, txn.FromRoomID)
	assert.Equal(t, uint(5), *txn.FromRoomID)
	require.NotNil(t, txn.ToRoomID)
	assert.Equal(t, uint(9), *txn.ToRoomID)
	assert.Equal(t, 8, txn.Quantity)
}

func TestTransferStockSameRoom(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 8, 5)

	uc := NewTransferStock(repo)

	_, err := uc.Execute(context.Background(), nil, TransferStockInput{ItemID: 1, ToRoomID: 5})
	assert.Equal(t, "same_room", businessCode(t, err))
	assert.Equal(t, uint(5), repo.items[1].RoomID)
}

func TestTransferStockUnknownRoom(t *testing.T) {
	repo := newFakeRepo()
	seedItem(repo, 1, 8, 5)

	uc := NewTransferStock(repo)

	_, err := uc.Execute(context.Background(), nil, TransferStockInput{ItemID: 1, ToRoomID: 42})
	assert.Equal(t, "room_not_found", businessCode(t, err))
}

package stock

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	domain "github.com/stockpilot/inventory-admin/internal/domain/stock"
	"github.com/stockpilot/inventory-admin/internal/httperr"
	"github.com/stockpilot/inventory-admin/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ReceiveStockInput struct {
	ItemID   uint
	RoomID   uint
	Quantity int
	Note     string
}

// ======================================================
// USE CASE
// ======================================================

type ReceiveStock struct {
	repo domain.Repository
}

func NewReceiveStock(repo domain.Repository) *ReceiveStock {
	return &ReceiveStock{repo: repo}
}

func (uc *ReceiveStock) Execute(
	ctx context.Context,
	actor *models.User,
	in ReceiveStockInput,
) (*models.StockTransaction, error) {

	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	var txn *models.StockTransaction

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		item, err := r.GetItemForUpdate(ctx, in.ItemID)
		if err != nil {
			return httperr.ErrBusiness("item_not_found")
		}

		roomID := item.RoomID
		if in.RoomID != 0 {
			room, err := r.GetRoom(ctx, in.RoomID)
			if err != nil {
				return httperr.ErrBusiness("room_not_found")
			}
			roomID = room.ID
		}

		// Pre-mutation snapshot for the "old" payload.
		old, err := activitylog.Snapshot(item)
		if err != nil {
			return err
		}

		item.Quantity += in.Quantity
		item.RoomID = roomID

		if err := r.SaveItem(ctx, item); err != nil {
			return err
		}

		var causerID *uint
		if actor != nil {
			causerID = &actor.ID
		}

		txn = &models.StockTransaction{
			Reference: uuid.NewString(),
			Type:      string(domain.TypeIn),
			ItemID:    item.ID,
			ToRoomID:  &roomID,
			Quantity:  in.Quantity,
			Note:      in.Note,
			UserID:    causerID,
		}

		if err := r.CreateTransaction(ctx, txn); err != nil {
			return err
		}

		if err := r.LogCreated(ctx, actor, txn); err != nil {
			return err
		}
		return r.LogUpdated(ctx, actor, item, old)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

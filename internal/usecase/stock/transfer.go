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

type TransferStockInput struct {
	ItemID   uint
	ToRoomID uint
	Note     string
}

// ======================================================
// USE CASE
// ======================================================

// TransferStock relocates an item between storage rooms. The full quantity
// moves with the item; the transaction row keeps both ends of the move.
type TransferStock struct {
	repo domain.Repository
}

func NewTransferStock(repo domain.Repository) *TransferStock {
	return &TransferStock{repo: repo}
}

func (uc *TransferStock) Execute(
	ctx context.Context,
	actor *models.User,
	in TransferStockInput,
) (*models.StockTransaction, error) {

	var txn *models.StockTransaction

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		item, err := r.GetItemForUpdate(ctx, in.ItemID)
		if err != nil {
			return httperr.ErrBusiness("item_not_found")
		}

		room, err := r.GetRoom(ctx, in.ToRoomID)
		if err != nil {
			return httperr.ErrBusiness("room_not_found")
		}

		if item.RoomID == room.ID {
			return httperr.ErrBusiness("same_room")
		}

		old, err := activitylog.Snapshot(item)
		if err != nil {
			return err
		}

		fromRoomID := item.RoomID
		item.RoomID = room.ID

		if err := r.SaveItem(ctx, item); err != nil {
			return err
		}

		var causerID *uint
		if actor != nil {
			causerID = &actor.ID
		}

		toRoomID := room.ID

		txn = &models.StockTransaction{
			Reference:  uuid.NewString(),
			Type:       string(domain.TypeTransfer),
			ItemID:     item.ID,
			FromRoomID: &fromRoomID,
			ToRoomID:   &toRoomID,
			Quantity:   item.Quantity,
			Note:       in.Note,
			UserID:     causerID,
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

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

type IssueStockInput struct {
	ItemID   uint
	Quantity int
	Note     string
}

// ======================================================
// USE CASE
// ======================================================

type IssueStock struct {
	repo domain.Repository
}

func NewIssueStock(repo domain.Repository) *IssueStock {
	return &IssueStock{repo: repo}
}

func (uc *IssueStock) Execute(
	ctx context.Context,
	actor *models.User,
	in IssueStockInput,
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

		if err := domain.CanIssue(item.Quantity, in.Quantity); err != nil {
			return err
		}

		old, err := activitylog.Snapshot(item)
		if err != nil {
			return err
		}

		item.Quantity -= in.Quantity

		if err := r.SaveItem(ctx, item); err != nil {
			return err
		}

		var causerID *uint
		if actor != nil {
			causerID = &actor.ID
		}

		fromRoomID := item.RoomID

		txn = &models.StockTransaction{
			Reference:  uuid.NewString(),
			Type:       string(domain.TypeOut),
			ItemID:     item.ID,
			FromRoomID: &fromRoomID,
			Quantity:   in.Quantity,
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

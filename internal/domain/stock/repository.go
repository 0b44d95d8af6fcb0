package stock

import (
	"context"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/models"
)

type Repository interface {
	// InTx runs fn against a repository bound to one database transaction.
	// Item mutation, transaction row and activity entries commit or roll
	// back together.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Item --------
	GetItemForUpdate(
		ctx context.Context,
		itemID uint,
	) (*models.Item, error)

	SaveItem(
		ctx context.Context,
		item *models.Item,
	) error

	// -------- Room --------
	GetRoom(
		ctx context.Context,
		roomID uint,
	) (*models.Room, error)

	// -------- Transaction --------
	CreateTransaction(
		ctx context.Context,
		txn *models.StockTransaction,
	) error

	// -------- Activity --------
	LogCreated(
		ctx context.Context,
		causer *models.User,
		subject activitylog.Subject,
	) error

	LogUpdated(
		ctx context.Context,
		causer *models.User,
		subject activitylog.Subject,
		old map[string]any,
	) error
}

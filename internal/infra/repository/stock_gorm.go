package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	domain "github.com/stockpilot/inventory-admin/internal/domain/stock"
	"github.com/stockpilot/inventory-admin/internal/models"
)

type StockGormRepository struct {
	db  *gorm.DB
	rec *activitylog.Recorder
}

func NewStockGormRepository(db *gorm.DB, rec *activitylog.Recorder) *StockGormRepository {
	return &StockGormRepository{db: db, rec: rec}
}

func (r *StockGormRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StockGormRepository{db: tx, rec: r.rec})
	})
}

// --------------------------------------------------
// Item
// --------------------------------------------------

// GetItemForUpdate takes a row lock so concurrent movements on the same item
// serialize on the storage engine.
func (r *StockGormRepository) GetItemForUpdate(
	ctx context.Context,
	itemID uint,
) (*models.Item, error) {

	var item models.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockGormRepository) SaveItem(
	ctx context.Context,
	item *models.Item,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// --------------------------------------------------
// Room
// --------------------------------------------------

func (r *StockGormRepository) GetRoom(
	ctx context.Context,
	roomID uint,
) (*models.Room, error) {

	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *StockGormRepository) CreateTransaction(
	ctx context.Context,
	txn *models.StockTransaction,
) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// --------------------------------------------------
// Activity
// --------------------------------------------------

func (r *StockGormRepository) LogCreated(
	ctx context.Context,
	causer *models.User,
	subject activitylog.Subject,
) error {
	return r.rec.Created(r.db.WithContext(ctx), causer, subject)
}

func (r *StockGormRepository) LogUpdated(
	ctx context.Context,
	causer *models.User,
	subject activitylog.Subject,
	old map[string]any,
) error {
	return r.rec.Updated(r.db.WithContext(ctx), causer, subject, old)
}

// Compile-time check
var _ domain.Repository = (*StockGormRepository)(nil)

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/authz"
	domain "github.com/stockpilot/inventory-admin/internal/domain/stock"
	"github.com/stockpilot/inventory-admin/internal/httperr"
	"github.com/stockpilot/inventory-admin/internal/models"
	ucStock "github.com/stockpilot/inventory-admin/internal/usecase/stock"
)

type TransactionHandler struct {
	db       *gorm.DB
	gate     *authz.Gate
	recorder *activitylog.Recorder

	receiveUC  *ucStock.ReceiveStock
	issueUC    *ucStock.IssueStock
	transferUC *ucStock.TransferStock
}

func NewTransactionHandler(
	db *gorm.DB,
	gate *authz.Gate,
	rec *activitylog.Recorder,
	receiveUC *ucStock.ReceiveStock,
	issueUC *ucStock.IssueStock,
	transferUC *ucStock.TransferStock,
) *TransactionHandler {
	return &TransactionHandler{
		db:         db,
		gate:       gate,
		recorder:   rec,
		receiveUC:  receiveUC,
		issueUC:    issueUC,
		transferUC: transferUC,
	}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Type     string `json:"type" binding:"required,stocktype"`
	ItemID   uint   `json:"item_id" binding:"required"`
	RoomID   uint   `json:"room_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// --------- Handlers ---------

func (h *TransactionHandler) Create(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionCreate, nil) {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var (
		txn *models.StockTransaction
		err error
	)

	ctx := c.Request.Context()

	switch domain.Type(req.Type) {
	case domain.TypeIn:
		txn, err = h.receiveUC.Execute(ctx, actor, ucStock.ReceiveStockInput{
			ItemID:   req.ItemID,
			RoomID:   req.RoomID,
			Quantity: req.Quantity,
			Note:     req.Note,
		})
	case domain.TypeOut:
		txn, err = h.issueUC.Execute(ctx, actor, ucStock.IssueStockInput{
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
			Note:     req.Note,
		})
	case domain.TypeTransfer:
		txn, err = h.transferUC.Execute(ctx, actor, ucStock.TransferStockInput{
			ItemID:   req.ItemID,
			ToRoomID: req.RoomID,
			Note:     req.Note,
		})
	}

	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Stock movement rejected.")
			return
		}
		httperr.Internal(c, "failed_to_create_transaction", "Could not register the stock movement.")
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) List(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionViewAny, nil) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.StockTransaction{}).
		Preload("Item").
		Preload("User")

	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	if itemID := c.Query("item_id"); itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "transaction_count_failed", "Could not count transactions.")
		return
	}

	var txns []models.StockTransaction
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error; err != nil {

		httperr.Internal(c, "transaction_list_failed", "Could not list transactions.")
		return
	}

	c.JSON(200, gin.H{
		"page":         page,
		"limit":        limit,
		"total":        total,
		"transactions": txns,
	})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	actor := currentActor(c, h.db)

	var txn models.StockTransaction
	if err := h.db.Preload("Item").Preload("User").
		First(&txn, "id = ?", c.Param("id")).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionView, &txn) {
		return
	}

	c.JSON(http.StatusOK, txn)
}

// Delete is a soft delete; the row stays recoverable through Restore.
func (h *TransactionHandler) Delete(c *gin.Context) {
	actor := currentActor(c, h.db)

	var txn models.StockTransaction
	if err := h.db.First(&txn, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionDelete, &txn) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&txn).Error; err != nil {
			return err
		}
		return h.recorder.Deleted(tx, actor, &txn)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_transaction"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TransactionHandler) Restore(c *gin.Context) {
	actor := currentActor(c, h.db)

	var txn models.StockTransaction
	if err := h.db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", c.Param("id")).
		First(&txn).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionRestore, &txn) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Model(&txn).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}
		return h.recorder.Log(tx, actor, &txn, "restored")
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_restore_transaction"})
		return
	}

	c.JSON(http.StatusOK, txn)
}

// ForceDelete removes the row for good. The activity entry is what remains.
func (h *TransactionHandler) ForceDelete(c *gin.Context) {
	actor := currentActor(c, h.db)

	var txn models.StockTransaction
	if err := h.db.Unscoped().First(&txn, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindTransaction, authz.ActionForceDelete, &txn) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&txn).Error; err != nil {
			return err
		}
		return h.recorder.Deleted(tx, actor, &txn)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_transaction"})
		return
	}

	c.Status(http.StatusNoContent)
}

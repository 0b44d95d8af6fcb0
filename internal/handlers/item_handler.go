package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/httpresp"
	"github.com/stockpilot/inventory-admin/internal/models"
)

type ItemHandler struct {
	db       *gorm.DB
	gate     *authz.Gate
	recorder *activitylog.Recorder
}

func NewItemHandler(db *gorm.DB, gate *authz.Gate, rec *activitylog.Recorder) *ItemHandler {
	return &ItemHandler{db: db, gate: gate, recorder: rec}
}

// --------- Requests ---------

type CreateItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	SKU        string  `json:"sku" binding:"required"`
	CategoryID uint    `json:"category_id" binding:"required"`
	RoomID     uint    `json:"room_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"min=0"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
}

type UpdateItemRequest struct {
	Name       *string  `json:"name,omitempty"`
	CategoryID *uint    `json:"category_id,omitempty"`
	RoomID     *uint    `json:"room_id,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ItemHandler) List(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindItem, authz.ActionViewAny, nil) {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Preload("Category").Preload("Room")

	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	if roomID := c.Query("room_id"); roomID != "" {
		q = q.Where("room_id = ?", roomID)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}

	var items []models.Item
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_items"})
		return
	}

	httpresp.List(c, items)
}

func (h *ItemHandler) Get(c *gin.Context) {
	actor := currentActor(c, h.db)

	var item models.Item
	if err := h.db.Preload("Category").Preload("Room").
		First(&item, "id = ?", c.Param("id")).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_item"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindItem, authz.ActionView, &item) {
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Create(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindItem, authz.ActionCreate, nil) {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := models.Item{
		Name:       req.Name,
		SKU:        strings.ToUpper(strings.TrimSpace(req.SKU)),
		CategoryID: req.CategoryID,
		RoomID:     req.RoomID,
		Quantity:   req.Quantity,
		Unit:       unit,
		Price:      req.Price,
		Active:     true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return h.recorder.Created(tx, actor, &item)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	actor := currentActor(c, h.db)

	var item models.Item
	if err := h.db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_item"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindItem, authz.ActionUpdate, &item) {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Snapshot before any field is touched; this becomes properties.old.
	old, err := activitylog.Snapshot(&item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_item"})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.RoomID != nil {
		item.RoomID = *req.RoomID
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return h.recorder.Updated(tx, actor, &item, old)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	actor := currentActor(c, h.db)

	var item models.Item
	if err := h.db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_item"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindItem, authz.ActionDelete, &item) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return h.recorder.Deleted(tx, actor, &item)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_item"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Activities returns the audit trail of one item, newest first.
func (h *ItemHandler) Activities(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindActivity, authz.ActionViewAny, nil) {
		return
	}

	var item models.Item
	if err := h.db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_item"})
		return
	}

	logs, err := h.recorder.ForSubject(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_activities"})
		return
	}

	httpresp.List(c, logs)
}

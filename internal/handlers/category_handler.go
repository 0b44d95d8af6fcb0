package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/httpresp"
	"github.com/stockpilot/inventory-admin/internal/models"
)

type CategoryHandler struct {
	db       *gorm.DB
	gate     *authz.Gate
	recorder *activitylog.Recorder
}

func NewCategoryHandler(db *gorm.DB, gate *authz.Gate, rec *activitylog.Recorder) *CategoryHandler {
	return &CategoryHandler{db: db, gate: gate, recorder: rec}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// --------- Handlers ---------

func (h *CategoryHandler) List(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindCategory, authz.ActionViewAny, nil) {
		return
	}

	var categories []models.Category
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_categories"})
		return
	}

	httpresp.List(c, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindCategory, authz.ActionCreate, nil) {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		return h.recorder.Created(tx, actor, &category)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	actor := currentActor(c, h.db)

	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "category_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_category"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindCategory, authz.ActionUpdate, &category) {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	old, err := activitylog.Snapshot(&category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_category"})
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&category).Error; err != nil {
			return err
		}
		return h.recorder.Updated(tx, actor, &category, old)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	actor := currentActor(c, h.db)

	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "category_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_category"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindCategory, authz.ActionDelete, &category) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&category).Error; err != nil {
			return err
		}
		return h.recorder.Deleted(tx, actor, &category)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_category"})
		return
	}

	c.Status(http.StatusNoContent)
}

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

type RoomHandler struct {
	db       *gorm.DB
	gate     *authz.Gate
	recorder *activitylog.Recorder
}

func NewRoomHandler(db *gorm.DB, gate *authz.Gate, rec *activitylog.Recorder) *RoomHandler {
	return &RoomHandler{db: db, gate: gate, recorder: rec}
}

// --------- Requests ---------

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// --------- Handlers ---------

func (h *RoomHandler) List(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindRoom, authz.ActionViewAny, nil) {
		return
	}

	var rooms []models.Room
	if err := h.db.Order("name ASC").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_rooms"})
		return
	}

	httpresp.List(c, rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindRoom, authz.ActionCreate, nil) {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	room := models.Room{
		Name:     req.Name,
		Location: req.Location,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return h.recorder.Created(tx, actor, &room)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_room"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	actor := currentActor(c, h.db)

	var room models.Room
	if err := h.db.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_room"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindRoom, authz.ActionUpdate, &room) {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	old, err := activitylog.Snapshot(&room)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_room"})
		return
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Location != nil {
		room.Location = *req.Location
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&room).Error; err != nil {
			return err
		}
		return h.recorder.Updated(tx, actor, &room, old)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_room"})
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	actor := currentActor(c, h.db)

	var room models.Room
	if err := h.db.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_room"})
		return
	}

	if !authorize(c, h.gate, actor, authz.KindRoom, authz.ActionDelete, &room) {
		return
	}

	var count int64
	h.db.Model(&models.Item{}).Where("room_id = ?", room.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_not_empty"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&room).Error; err != nil {
			return err
		}
		return h.recorder.Deleted(tx, actor, &room)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_room"})
		return
	}

	c.Status(http.StatusNoContent)
}

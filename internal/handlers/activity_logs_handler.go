package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/httperr"
	"github.com/stockpilot/inventory-admin/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ActivityLogsHandler struct {
	db       *gorm.DB
	gate     *authz.Gate
	registry *activitylog.Registry
}

func NewActivityLogsHandler(db *gorm.DB, gate *authz.Gate, registry *activitylog.Registry) *ActivityLogsHandler {
	return &ActivityLogsHandler{db: db, gate: gate, registry: registry}
}

func (h *ActivityLogsHandler) List(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindActivity, authz.ActionViewAny, nil) {
		return
	}

	logName := c.Query("log_name")
	subjectType := c.Query("subject_type")
	subjectIDStr := c.Query("subject_id")
	causerIDStr := c.Query("causer_id")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.ActivityLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if logName != "" {
		q = q.Where("log_name = ?", logName)
	}

	if subjectType != "" {
		q = q.Where("subject_type = ?", subjectType)
	}

	if subjectIDStr != "" {
		if id, err := strconv.Atoi(subjectIDStr); err == nil {
			q = q.Where("subject_id = ?", id)
		}
	}

	if causerIDStr != "" {
		if id, err := strconv.Atoi(causerIDStr); err == nil {
			q = q.Where("causer_id = ?", id)
		}
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "activity_count_failed", "Could not count activity entries.")
		return
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	var logs []models.ActivityLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "activity_list_failed", "Could not list activity entries.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

// Subject re-hydrates the polymorphic subject of one entry. Entries whose
// subject is gone answer with null rather than an error: the trail outlives
// the entities it describes.
func (h *ActivityLogsHandler) Subject(c *gin.Context) {
	actor := currentActor(c, h.db)
	if !authorize(c, h.gate, actor, authz.KindActivity, authz.ActionView, nil) {
		return
	}

	var entry models.ActivityLog
	if err := h.db.First(&entry, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "activity_not_found", "No such activity entry.")
			return
		}
		httperr.Internal(c, "failed_to_get_activity", "Could not load the activity entry.")
		return
	}

	if entry.SubjectType == nil || entry.SubjectID == nil {
		c.JSON(200, gin.H{"subject": nil})
		return
	}

	subject, err := h.registry.Resolve(c.Request.Context(), h.db, *entry.SubjectType, *entry.SubjectID)
	if err != nil {
		if err == activitylog.ErrUnknownKind {
			httperr.BadRequest(c, "unknown_subject_kind", "This entry references an unregistered kind.")
			return
		}
		httperr.Internal(c, "failed_to_resolve_subject", "Could not resolve the subject.")
		return
	}

	c.JSON(200, gin.H{"subject": subject})
}

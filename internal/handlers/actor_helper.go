package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/httperr"
	"github.com/stockpilot/inventory-admin/internal/middleware"
	"github.com/stockpilot/inventory-admin/internal/models"
)

// currentActor loads the authenticated user, or nil when the request carries
// no identity. A nil actor still flows through the gate (and is denied
// everything), and produces null causer fields on activity entries.
func currentActor(c *gin.Context, db *gorm.DB) *models.User {
	val, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}

	userID, ok := val.(uint)
	if !ok {
		return nil
	}

	var user models.User
	if err := db.Preload("Roles").First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}

// authorize runs the gate and writes the rejection when the check does not
// pass. Returns true when the handler may proceed.
func authorize(
	c *gin.Context,
	gate *authz.Gate,
	actor *models.User,
	kind string,
	action authz.Action,
	subject any,
) bool {

	ok, err := gate.Authorize(c.Request.Context(), actor, kind, action, subject)
	if err != nil {
		httperr.Internal(c, "authorization_failed", "Could not resolve permissions.")
		return false
	}
	if !ok {
		httperr.Forbidden(c, "forbidden", "You are not allowed to perform this action.")
		return false
	}
	return true
}

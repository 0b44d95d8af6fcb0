package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := currentActor(c, h.db)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var user models.User
	if err := h.db.Preload("Roles.Permissions").Preload("Permissions").
		First(&user, actor.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	roles := make([]string, 0, len(user.Roles))
	permSet := make(map[string]struct{})
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
		for _, p := range r.Permissions {
			permSet[p.Name] = struct{}{}
		}
	}
	for _, p := range user.Permissions {
		permSet[p.Name] = struct{}{}
	}

	perms := make([]string, 0, len(permSet))
	for name := range permSet {
		perms = append(perms, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"roles":       roles,
		"permissions": perms,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/httpresp"
	"github.com/stockpilot/inventory-admin/internal/models"
)

// RoleHandler manages the role/permission graph. Every mutation here changes
// what HasPermission may answer, so each one invalidates the permission
// cache before responding. Managing roles is reserved to the admin role.
type RoleHandler struct {
	db      *gorm.DB
	checker *authz.Checker
}

func NewRoleHandler(db *gorm.DB, checker *authz.Checker) *RoleHandler {
	return &RoleHandler{db: db, checker: checker}
}

// --------- Requests ---------

type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

type SetRolePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// --------- Helpers ---------

func (h *RoleHandler) requireAdmin(c *gin.Context) *models.User {
	actor := currentActor(c, h.db)

	isAdmin, err := h.checker.HasRole(c.Request.Context(), actor, authz.RoleAdmin)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authorization_failed"})
		return nil
	}
	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil
	}
	return actor
}

// --------- Handlers ---------

func (h *RoleHandler) List(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var roles []models.Role
	if err := h.db.Preload("Permissions").Order("id ASC").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_roles"})
		return
	}

	httpresp.List(c, roles)
}

func (h *RoleHandler) Create(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := models.Role{Name: req.Name}
	if err := h.db.Create(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_role"})
		return
	}

	if err := h.checker.Invalidate(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_invalidate_permissions"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var role models.Role
	if err := h.db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "role_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_role"})
		return
	}

	if role.Name == authz.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot_delete_admin_role"})
		return
	}

	if err := h.db.Select("Permissions").Delete(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_role"})
		return
	}

	if err := h.checker.Invalidate(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_invalidate_permissions"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPermissions replaces a role's permission set.
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var role models.Role
	if err := h.db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "role_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_role"})
		return
	}

	var req SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var perms []models.Permission
	if err := h.db.Where("name IN ?", req.Permissions).Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_permissions"})
		return
	}
	if len(perms) != len(req.Permissions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_permission"})
		return
	}

	if err := h.db.Model(&role).Association("Permissions").Replace(perms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_set_permissions"})
		return
	}

	if err := h.checker.Invalidate(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_invalidate_permissions"})
		return
	}

	role.Permissions = perms
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var perms []models.Permission
	if err := h.db.Order("name ASC").Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_permissions"})
		return
	}

	httpresp.List(c, perms)
}

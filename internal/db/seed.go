package db

import (
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// Permission matrix: CRUD verbs per governed noun, plus the view-only
// activity log. Seeding is idempotent so it can run on every boot.

var crudNouns = []string{"items", "categories", "rooms", "transactions", "users"}

var crudVerbs = []string{"view", "create", "edit", "delete"}

func PermissionNames() []string {
	names := make([]string, 0, len(crudNouns)*len(crudVerbs)+1)
	for _, noun := range crudNouns {
		for _, verb := range crudVerbs {
			names = append(names, verb+" "+noun)
		}
	}
	names = append(names, "view activities")
	return names
}

func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		perms := make([]models.Permission, 0)
		for _, name := range PermissionNames() {
			var p models.Permission
			if err := tx.Where(models.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
				return err
			}
			perms = append(perms, p)
		}

		var admin models.Role
		if err := tx.Where(models.Role{Name: "admin"}).FirstOrCreate(&admin).Error; err != nil {
			return err
		}
		if err := tx.Model(&admin).Association("Permissions").Replace(perms); err != nil {
			return err
		}

		var staff models.Role
		if err := tx.Where(models.Role{Name: "staff"}).FirstOrCreate(&staff).Error; err != nil {
			return err
		}

		staffNames := map[string]bool{
			"view items":          true,
			"view categories":     true,
			"view rooms":          true,
			"view transactions":   true,
			"create transactions": true,
		}
		staffPerms := make([]models.Permission, 0, len(staffNames))
		for _, p := range perms {
			if staffNames[p.Name] {
				staffPerms = append(staffPerms, p)
			}
		}
		return tx.Model(&staff).Association("Permissions").Replace(staffPerms)
	})
}

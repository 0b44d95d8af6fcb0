package authz

import (
	"context"

	"gorm.io/gorm"
)

// Store answers which grants an actor currently holds. Kept behind an
// interface so the checker and policies can be exercised without a database.
type Store interface {
	// DirectPermissions returns permission names granted straight to the user.
	DirectPermissions(ctx context.Context, userID uint) ([]string, error)

	// RolePermissions returns permission names granted through any of the
	// user's roles.
	RolePermissions(ctx context.Context, userID uint) ([]string, error)

	// RoleNames returns the names of the roles the user holds.
	RoleNames(ctx context.Context, userID uint) ([]string, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DirectPermissions(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN user_permissions up ON up.permission_id = permissions.id").
		Where("up.user_id = ?", userID).
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *GormStore) RolePermissions(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ?", userID).
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *GormStore) RoleNames(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("roles").
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

var _ Store = (*GormStore)(nil)

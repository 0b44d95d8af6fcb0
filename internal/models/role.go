package models

import "time"

type Role struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`

	Permissions []Permission `gorm:"many2many:role_permissions;constraint:OnDelete:CASCADE;" json:"permissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Permission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type StockTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	Type      string `gorm:"size:20;not null" json:"type"` // in, out, transfer

	ItemID uint `gorm:"not null" json:"item_id"`
	Item   Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"item,omitempty"`

	FromRoomID *uint `json:"from_room_id"`
	ToRoomID   *uint `json:"to_room_id"`

	Quantity int    `gorm:"not null" json:"quantity"`
	Note     string `gorm:"size:255" json:"note"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StockTransaction) LogName() string { return "transaction" }

func (t *StockTransaction) SubjectKey() uint { return t.ID }

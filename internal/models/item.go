package models

import "time"

type Item struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	SKU  string `gorm:"size:50;uniqueIndex;not null" json:"sku"`

	CategoryID uint     `json:"category_id"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	RoomID uint `json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room,omitempty"`

	Quantity int     `gorm:"not null;default:0" json:"quantity"`
	Unit     string  `gorm:"size:20;default:'pcs'" json:"unit"`
	Price    float64 `json:"price"`
	Active   bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) LogName() string { return "item" }

func (i *Item) SubjectKey() uint { return i.ID }

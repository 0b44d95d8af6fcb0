package models

import "time"

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Location string `gorm:"size:255" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) LogName() string { return "room" }

func (r *Room) SubjectKey() uint { return r.ID }

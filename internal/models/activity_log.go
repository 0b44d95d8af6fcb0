package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of one lifecycle transition of one
// subject entity. Rows are never updated or deleted by the application.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LogName     string `gorm:"size:50;index" json:"log_name"`
	Description string `gorm:"size:255;not null" json:"description"`

	SubjectType *string `gorm:"size:50;index:idx_activity_logs_subject" json:"subject_type"`
	SubjectID   *uint   `gorm:"index:idx_activity_logs_subject" json:"subject_id"`

	CauserType *string `gorm:"size:50;index:idx_activity_logs_causer" json:"causer_type"`
	CauserID   *uint   `gorm:"index:idx_activity_logs_causer" json:"causer_id"`

	Properties datatypes.JSON `gorm:"type:jsonb" json:"properties"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

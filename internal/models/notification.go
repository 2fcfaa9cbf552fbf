package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is created exclusively as a side effect of a report status
// transition and is only ever mutated by its recipient.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	ReportID  *uint          `json:"reportId"`
	Report    *Report        `json:"report,omitempty" gorm:"foreignKey:ReportID"`
	Title     string         `json:"title" gorm:"not null"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	IsRead    bool           `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

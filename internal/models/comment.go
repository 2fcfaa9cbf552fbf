package models

import (
	"time"

	"gorm.io/gorm"
)

// InternalComment is the staff-only coordination channel on a report. It
// is never visible to the reporting citizen; write and read eligibility
// is re-checked against the report's live assignment on every call.
type InternalComment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ReportID  uint           `json:"reportId" gorm:"not null;index"`
	Report    *Report        `json:"report,omitempty" gorm:"foreignKey:ReportID"`
	AuthorID  uint           `json:"authorId" gorm:"not null"`
	Author    *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (InternalComment) TableName() string {
	return "internal_comments"
}

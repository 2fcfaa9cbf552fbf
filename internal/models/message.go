package models

import (
	"time"

	"gorm.io/gorm"
)

// Message bridges the reporting citizen and the staff assigned to their
// report. Broader eligibility than InternalComment: the owner takes part.
type Message struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ReportID  uint           `json:"reportId" gorm:"not null;index"`
	Report    *Report        `json:"report,omitempty" gorm:"foreignKey:ReportID"`
	SenderID  uint           `json:"senderId" gorm:"not null"`
	Sender    *User          `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}

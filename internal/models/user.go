package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Username           string         `json:"username" gorm:"uniqueIndex;not null"`
	Email              string         `json:"email" gorm:"uniqueIndex;not null"`
	Password           string         `json:"-" gorm:"not null"`
	FirstName          string         `json:"firstName" gorm:"not null"`
	LastName           string         `json:"lastName" gorm:"not null"`
	UserType           UserType       `json:"userType" gorm:"not null;default:'citizen'"`
	Roles              pq.StringArray `json:"roles" gorm:"type:text[]"`
	EmailNotifications bool           `json:"emailNotifications" gorm:"not null;default:true"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(r Role) bool {
	for _, held := range u.Roles {
		if Role(held) == r {
			return true
		}
	}
	return false
}

// IsStaff reports whether the user holds any municipal capability at all
// (admin account or at least one granular role).
func (u *User) IsStaff() bool {
	return IsAdmin(u.UserType) || len(u.Roles) > 0
}

package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusAssigned  ReportStatus = "assigned"
	StatusRejected  ReportStatus = "rejected"
	StatusProgress  ReportStatus = "progress"
	StatusSuspended ReportStatus = "suspended"
	StatusResolved  ReportStatus = "resolved"
)

// AssigneeStatuses are the statuses an assigned officer or delegated
// maintainer may move a report to.
var AssigneeStatuses = []ReportStatus{
	StatusProgress,
	StatusSuspended,
	StatusResolved,
}

// ActiveStatuses are the non-terminal states that count toward an
// officer's load and from which an assignee may still update the report.
var ActiveStatuses = []ReportStatus{
	StatusAssigned,
	StatusProgress,
	StatusSuspended,
}

type ReportCategory string

const (
	CategoryPublicLighting ReportCategory = "Public Lighting"
	CategoryWaste          ReportCategory = "Waste"
	CategoryRoads          ReportCategory = "Roads and Urban Furnishings"
	CategoryWaterSupply    ReportCategory = "Water Supply"
	CategorySewer          ReportCategory = "Sewer"
	CategoryGreenAreas     ReportCategory = "Public Green Areas"
	CategoryRoadSigns      ReportCategory = "Road Signs and Traffic Lights"
	CategoryBarriers       ReportCategory = "Architectural Barriers"
	CategoryOther          ReportCategory = "Other"
)

var ReportCategories = []ReportCategory{
	CategoryPublicLighting,
	CategoryWaste,
	CategoryRoads,
	CategoryWaterSupply,
	CategorySewer,
	CategoryGreenAreas,
	CategoryRoadSigns,
	CategoryBarriers,
	CategoryOther,
}

func IsValidCategory(c ReportCategory) bool {
	for _, known := range ReportCategories {
		if known == c {
			return true
		}
	}
	return false
}

func IsValidAssigneeStatus(s ReportStatus) bool {
	for _, allowed := range AssigneeStatuses {
		if allowed == s {
			return true
		}
	}
	return false
}

// Report is the aggregate root of the system. A nil UserID marks an
// anonymous report, which permanently has no owner. RejectionReason and
// TechnicalOffice are mutually exclusive over the report's lifetime.
type Report struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	UserID               *uint          `json:"userId"`
	User                 *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Latitude             float64        `json:"latitude" gorm:"not null"`
	Longitude            float64        `json:"longitude" gorm:"not null"`
	Title                string         `json:"title" gorm:"not null"`
	Description          string         `json:"description" gorm:"type:text;not null"`
	Category             ReportCategory `json:"category" gorm:"not null"`
	Photos               pq.StringArray `json:"photos" gorm:"type:text[];not null"`
	Status               ReportStatus   `json:"status" gorm:"not null;default:'pending';index"`
	RejectionReason      *string        `json:"rejection_reason"`
	TechnicalOffice      *Role          `json:"technical_office"`
	OfficerID            *uint          `json:"officerId" gorm:"index"`
	Officer              *User          `json:"officer,omitempty" gorm:"foreignKey:OfficerID"`
	ExternalMaintainerID *uint          `json:"externalMaintainerId" gorm:"index"`
	ExternalMaintainer   *User          `json:"externalMaintainer,omitempty" gorm:"foreignKey:ExternalMaintainerID"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) IsAnonymous() bool {
	return r.UserID == nil
}

// IsAssignee reports whether the user is the report's current officer or
// its delegated external maintainer.
func (r *Report) IsAssignee(userID uint) bool {
	if r.OfficerID != nil && *r.OfficerID == userID {
		return true
	}
	if r.ExternalMaintainerID != nil && *r.ExternalMaintainerID == userID {
		return true
	}
	return false
}

func (r *Report) IsOwner(userID uint) bool {
	return r.UserID != nil && *r.UserID == userID
}

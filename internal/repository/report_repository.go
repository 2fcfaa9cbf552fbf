package repository

import (
	"errors"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by all repositories when the referenced row
// does not exist. Services translate it into their own error taxonomy.
var ErrNotFound = errors.New("record not found")

// ReportFilter narrows List results. Zero values mean "no constraint".
type ReportFilter struct {
	Status     models.ReportStatus
	OfficerID  uint
	ReporterID uint
	Limit      int
}

// ReportRepository is the storage port of the lifecycle engine. Every
// transition method is a single conditional write: the row is updated only
// when it still holds the expected current status, and the boolean result
// reports whether the write won. This is the serialization point for
// concurrent reviews of the same report.
type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(id uint) (*models.Report, error)
	List(filter ReportFilter) ([]models.Report, error)

	// Accept moves a pending report to assigned, recording the technical
	// office and the selected officer.
	Accept(id uint, office models.Role, officerID uint) (bool, error)
	// Reject moves a pending report to rejected, recording the reason.
	Reject(id uint, reason string) (bool, error)
	// Delegate sets the external maintainer on a report that is still
	// assigned.
	Delegate(id uint, maintainerID uint) (bool, error)
	// SetAssigneeStatus moves the report to target if its current status
	// is one of allowedCurrent.
	SetAssigneeStatus(id uint, target models.ReportStatus, allowedCurrent []models.ReportStatus) (bool, error)

	// CountActiveAssignments returns the user's load: reports where they
	// are the officer or delegated maintainer in a non-terminal status.
	CountActiveAssignments(userID uint) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("User").Preload("Officer").Preload("ExternalMaintainer").
		First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(filter ReportFilter) ([]models.Report, error) {
	query := r.db.Preload("User").Preload("Officer").Preload("ExternalMaintainer")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OfficerID != 0 {
		query = query.Where("(officer_id = ? OR external_maintainer_id = ?)", filter.OfficerID, filter.OfficerID)
	}
	if filter.ReporterID != 0 {
		query = query.Where("user_id = ?", filter.ReporterID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var reports []models.Report
	if err := query.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Accept(id uint, office models.Role, officerID uint) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusAssigned,
			"technical_office": office,
			"officer_id":       officerID,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *reportRepository) Reject(id uint, reason string) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusRejected,
			"rejection_reason": reason,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *reportRepository) Delegate(id uint, maintainerID uint) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.StatusAssigned).
		Update("external_maintainer_id", maintainerID)
	return res.RowsAffected > 0, res.Error
}

func (r *reportRepository) SetAssigneeStatus(id uint, target models.ReportStatus, allowedCurrent []models.ReportStatus) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("id = ? AND status IN ?", id, allowedCurrent).
		Update("status", target)
	return res.RowsAffected > 0, res.Error
}

func (r *reportRepository) CountActiveAssignments(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("(officer_id = ? OR external_maintainer_id = ?) AND status IN ?",
			userID, userID, models.ActiveStatuses).
		Count(&count).Error
	return count, err
}

package services

import (
	"strings"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/logger"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

const (
	ReviewAccepted = "accepted"
	ReviewRejected = "rejected"
)

// CreateReportRequest carries the citizen-facing creation payload. A nil
// UserID marks an anonymous report.
type CreateReportRequest struct {
	UserID      *uint
	Latitude    float64
	Longitude   float64
	Title       string
	Description string
	Category    string
	Photos      []string
}

// ReviewRequest carries a public-relations review decision.
type ReviewRequest struct {
	Status          string
	Explanation     string
	TechnicalOffice string
}

// ReportService is the lifecycle engine: it validates and applies status
// transitions, enforcing the per-transition authorization matrix, and
// hands every committed transition to the notification dispatcher.
type ReportService struct {
	reports  repository.ReportRepository
	users    repository.UserRepository
	selector *AssignmentSelector
	notifier StatusNotifier
}

func NewReportService(reports repository.ReportRepository, users repository.UserRepository, selector *AssignmentSelector, notifier StatusNotifier) *ReportService {
	return &ReportService{
		reports:  reports,
		users:    users,
		selector: selector,
		notifier: notifier,
	}
}

// CreateReport validates the payload and persists a new pending report.
func (rs *ReportService) CreateReport(req CreateReportRequest) (*models.Report, error) {
	if req.Latitude < -90 || req.Latitude > 90 {
		return nil, NewValidationError("latitude must be between -90 and 90")
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return nil, NewValidationError("longitude must be between -180 and 180")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title must not be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, NewValidationError("description must not be empty")
	}
	category := models.ReportCategory(req.Category)
	if !models.IsValidCategory(category) {
		return nil, NewValidationError("unknown category %q", req.Category)
	}
	if len(req.Photos) < 1 || len(req.Photos) > 3 {
		return nil, NewValidationError("a report requires between 1 and 3 photos")
	}
	for _, photo := range req.Photos {
		if strings.TrimSpace(photo) == "" {
			return nil, NewValidationError("photo references must not be empty")
		}
	}

	if req.UserID != nil {
		if _, err := rs.users.GetByID(*req.UserID); err != nil {
			if err == repository.ErrNotFound {
				return nil, NewNotFoundError("user %d not found", *req.UserID)
			}
			return nil, err
		}
	}

	report := models.Report{
		UserID:      req.UserID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Photos:      req.Photos,
		Status:      models.StatusPending,
	}
	if err := rs.reports.Create(&report); err != nil {
		return nil, err
	}

	logger.WithReport(report.ID).Info("report created")
	return rs.getReport(report.ID)
}

// Review accepts or rejects a pending report. Only a public-relations
// officer or an admin may review; acceptance routes the report to the
// least-loaded officer of the requested technical office. The status
// write is conditional on the report still being pending, so of two
// concurrent reviews exactly one wins.
func (rs *ReportService) Review(reportID, actorID uint, req ReviewRequest) (*models.Report, error) {
	actor, err := rs.getActor(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasRole(models.RolePublicRelations) && !models.IsAdmin(actor.UserType) {
		return nil, NewAuthorizationError("only a public relations officer or an admin may review reports")
	}

	report, err := rs.getReport(reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.StatusPending {
		return nil, NewConflictError("report %d has already been reviewed", reportID)
	}

	switch req.Status {
	case ReviewAccepted:
		office, ok := models.ParseRole(req.TechnicalOffice)
		if !ok || !models.IsInternalTechnicalRole(office) {
			return nil, NewValidationError("invalid technical office %q", req.TechnicalOffice)
		}

		officer, err := rs.selector.SelectOfficer(office)
		if err != nil {
			return nil, err
		}

		applied, err := rs.reports.Accept(reportID, office, officer.ID)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, NewConflictError("report %d has already been reviewed", reportID)
		}

		updated, err := rs.getReport(reportID)
		if err != nil {
			return nil, err
		}
		rs.notifier.NotifyStatusChange(updated, models.StatusPending, models.StatusAssigned, "")
		return updated, nil

	case ReviewRejected:
		reason := strings.TrimSpace(req.Explanation)
		if reason == "" {
			return nil, NewValidationError("a rejection requires a non-empty explanation")
		}

		applied, err := rs.reports.Reject(reportID, reason)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, NewConflictError("report %d has already been reviewed", reportID)
		}

		updated, err := rs.getReport(reportID)
		if err != nil {
			return nil, err
		}
		rs.notifier.NotifyStatusChange(updated, models.StatusPending, models.StatusRejected, reason)
		return updated, nil

	default:
		return nil, NewValidationError("review status must be %q or %q", ReviewAccepted, ReviewRejected)
	}
}

// AssignExternal lets the currently assigned officer delegate the report
// to an external maintainer. The report must still be assigned; the
// status stays assigned and no notification is produced (no status
// change).
func (rs *ReportService) AssignExternal(reportID, actorID, maintainerID uint) (*models.Report, error) {
	report, err := rs.getReport(reportID)
	if err != nil {
		return nil, err
	}

	if report.OfficerID == nil || *report.OfficerID != actorID {
		return nil, NewAuthorizationError("only the assigned officer may delegate this report")
	}
	if report.Status != models.StatusAssigned {
		return nil, NewConflictError("report %d is not in the assigned status", reportID)
	}

	maintainer, err := rs.users.GetByID(maintainerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NewNotFoundError("user %d not found", maintainerID)
		}
		return nil, err
	}
	if !maintainer.HasRole(models.RoleExternalMaintainer) {
		return nil, NewValidationError("user %d is not an external maintainer", maintainerID)
	}

	applied, err := rs.reports.Delegate(reportID, maintainerID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConflictError("report %d is not in the assigned status", reportID)
	}

	logger.WithReport(reportID).Info("report delegated to external maintainer")
	return rs.getReport(reportID)
}

// UpdateAssigneeStatus moves the report between the assignee-controlled
// statuses. Only the assigned officer or the delegated maintainer may
// call it, the target must be progress, suspended or resolved, and the
// report must currently be in a non-terminal assigned state: a rejected
// or still-pending report cannot be moved by a last-known assignee.
func (rs *ReportService) UpdateAssigneeStatus(reportID, actorID uint, status models.ReportStatus) (*models.Report, error) {
	if !models.IsValidAssigneeStatus(status) {
		return nil, NewValidationError("status must be one of progress, suspended, resolved")
	}

	report, err := rs.getReport(reportID)
	if err != nil {
		return nil, err
	}

	if !report.IsAssignee(actorID) {
		return nil, NewAuthorizationError("only the assigned officer or external maintainer may update this report")
	}

	oldStatus := report.Status
	applied, err := rs.reports.SetAssigneeStatus(reportID, status, models.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConflictError("report %d cannot move from %s to %s", reportID, oldStatus, status)
	}

	updated, err := rs.getReport(reportID)
	if err != nil {
		return nil, err
	}
	rs.notifier.NotifyStatusChange(updated, oldStatus, status, "")
	return updated, nil
}

func (rs *ReportService) GetReport(reportID uint) (*models.Report, error) {
	return rs.getReport(reportID)
}

func (rs *ReportService) ListReports(filter repository.ReportFilter) ([]models.Report, error) {
	return rs.reports.List(filter)
}

func (rs *ReportService) getReport(reportID uint) (*models.Report, error) {
	report, err := rs.reports.GetByID(reportID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NewNotFoundError("report %d not found", reportID)
		}
		return nil, err
	}
	return report, nil
}

func (rs *ReportService) getActor(actorID uint) (*models.User, error) {
	actor, err := rs.users.GetByID(actorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NewAuthorizationError("unknown user %d", actorID)
		}
		return nil, err
	}
	return actor, nil
}

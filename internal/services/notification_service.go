package services

import (
	"fmt"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/logger"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

// StatusNotifier is what the lifecycle engine sees of the dispatcher: a
// call that can never fail back into the transition that triggered it.
type StatusNotifier interface {
	NotifyStatusChange(report *models.Report, oldStatus, newStatus models.ReportStatus, reason string)
}

// NotificationService persists notifications for report owners and
// best-effort sends emails when the owner opted in. It also serves the
// recipient-scoped notification operations behind the HTTP layer.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	email         EmailSender
}

func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, email EmailSender) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		email:         email,
	}
}

// NotifyStatusChange runs the dispatch in its own goroutine. The
// triggering transition has already committed; by contract nothing that
// happens here may fail or delay it, so the goroutine recovers panics and
// Dispatch swallows its own errors.
func (ns *NotificationService) NotifyStatusChange(report *models.Report, oldStatus, newStatus models.ReportStatus, reason string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("notification dispatch panicked", map[string]interface{}{
					"report_id": report.ID,
					"panic":     fmt.Sprintf("%v", r),
				})
			}
		}()
		ns.Dispatch(report, oldStatus, newStatus, reason)
	}()
}

// Dispatch persists one notification for the report's owner and attempts
// the optional email. Anonymous reports have no recipient: no-op. All
// failures are logged and swallowed.
func (ns *NotificationService) Dispatch(report *models.Report, oldStatus, newStatus models.ReportStatus, reason string) {
	if report.IsAnonymous() {
		return
	}

	owner, err := ns.users.GetByID(*report.UserID)
	if err != nil {
		logger.Error("failed to resolve report owner for notification", map[string]interface{}{
			"report_id": report.ID,
			"user_id":   *report.UserID,
			"error":     err.Error(),
		})
		return
	}

	title := fmt.Sprintf("Report Status Updated: %s", report.Title)
	body := statusChangeBody(report.Title, oldStatus, newStatus, reason)

	notification := models.Notification{
		UserID:   owner.ID,
		ReportID: &report.ID,
		Title:    title,
		Message:  body,
	}
	if err := ns.notifications.Create(&notification); err != nil {
		logger.Error("failed to persist notification", map[string]interface{}{
			"report_id": report.ID,
			"user_id":   owner.ID,
			"error":     err.Error(),
		})
		return
	}

	if owner.EmailNotifications && owner.Email != "" {
		if err := ns.email.Send(owner.Email, title, body); err != nil {
			logger.Warn("failed to send notification email", map[string]interface{}{
				"report_id": report.ID,
				"user_id":   owner.ID,
				"error":     err.Error(),
			})
		}
	}
}

// statusChangeBody composes the notification text. The body always names
// the old and the new status; the rejection reason is included when set.
func statusChangeBody(title string, oldStatus, newStatus models.ReportStatus, reason string) string {
	base := fmt.Sprintf("Your report %q changed status from %s to %s.", title, oldStatus, newStatus)

	switch newStatus {
	case models.StatusAssigned:
		return base + " It has been assigned to a technical office."
	case models.StatusRejected:
		return base + fmt.Sprintf(" Reason: %s", reason)
	case models.StatusProgress:
		return base + " Work on it is now in progress."
	case models.StatusSuspended:
		return base + " Work on it has been suspended."
	case models.StatusResolved:
		return base + " It has been resolved. Thank you for your contribution."
	default:
		return base
	}
}

func (ns *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	return ns.notifications.ListForUser(userID)
}

func (ns *NotificationService) ListUnread(userID uint) ([]models.Notification, error) {
	return ns.notifications.ListUnread(userID)
}

// MarkRead marks one notification as read. Only the owning recipient may
// do so; a mismatched pair reads as not found.
func (ns *NotificationService) MarkRead(id, userID uint) error {
	ok, err := ns.notifications.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("notification %d not found", id)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many changed.
func (ns *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return ns.notifications.MarkAllRead(userID)
}

// Delete removes one notification, recipient-scoped. Idempotent in the
// sense that a second delete reads as not found.
func (ns *NotificationService) Delete(id, userID uint) error {
	ok, err := ns.notifications.Delete(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("notification %d not found", id)
	}
	return nil
}

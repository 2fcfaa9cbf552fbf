package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

// In-memory repository fakes. They mirror the conditional-write contract
// of the gorm implementations so the lifecycle tests exercise the same
// compare-and-swap semantics without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List() ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListByRole(role models.Role) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, user := range f.users {
		if user.HasRole(role) {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Save(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uint]*models.Report
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint]*models.Report), nextID: 1}
}

func (f *fakeReportRepo) Create(report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report.ID = f.nextID
	f.nextID++
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

// put installs a report in an arbitrary state, for tests that need to
// start from a non-initial status.
func (f *fakeReportRepo) put(report *models.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if report.ID == 0 {
		report.ID = f.nextID
		f.nextID++
	} else if report.ID >= f.nextID {
		f.nextID = report.ID + 1
	}
	copied := *report
	f.reports[report.ID] = &copied
}

func (f *fakeReportRepo) GetByID(id uint) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) List(filter repository.ReportFilter) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Report
	for _, report := range f.reports {
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.OfficerID != 0 && !report.IsAssignee(filter.OfficerID) {
			continue
		}
		if filter.ReporterID != 0 && !report.IsOwner(filter.ReporterID) {
			continue
		}
		out = append(out, *report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeReportRepo) Accept(id uint, office models.Role, officerID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok || report.Status != models.StatusPending {
		return false, nil
	}
	officeCopy := office
	officerCopy := officerID
	report.Status = models.StatusAssigned
	report.TechnicalOffice = &officeCopy
	report.OfficerID = &officerCopy
	return true, nil
}

func (f *fakeReportRepo) Reject(id uint, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok || report.Status != models.StatusPending {
		return false, nil
	}
	reasonCopy := reason
	report.Status = models.StatusRejected
	report.RejectionReason = &reasonCopy
	return true, nil
}

func (f *fakeReportRepo) Delegate(id uint, maintainerID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok || report.Status != models.StatusAssigned {
		return false, nil
	}
	maintainerCopy := maintainerID
	report.ExternalMaintainerID = &maintainerCopy
	return true, nil
}

func (f *fakeReportRepo) SetAssigneeStatus(id uint, target models.ReportStatus, allowedCurrent []models.ReportStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return false, nil
	}
	allowed := false
	for _, s := range allowedCurrent {
		if report.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, nil
	}
	report.Status = target
	return true, nil
}

func (f *fakeReportRepo) CountActiveAssignments(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, report := range f.reports {
		if !report.IsAssignee(userID) {
			continue
		}
		for _, s := range models.ActiveStatuses {
			if report.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        uint
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	notification.ID = f.nextID
	f.nextID++
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) ListForUser(userID uint) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListUnread(userID uint) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(id, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) MarkAllRead(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(id, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.InternalComment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (f *fakeCommentRepo) Create(comment *models.InternalComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.nextID
	f.nextID++
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListForReport(reportID uint) ([]models.InternalComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InternalComment
	for _, comment := range f.comments {
		if comment.ReportID == reportID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
	nextID   uint
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) Create(message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) ListForReport(reportID uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, message := range f.messages {
		if message.ReportID == reportID {
			out = append(out, message)
		}
	}
	return out, nil
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

func (f *fakeEmailSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// syncNotifier runs the dispatch inline so tests observe notifications
// deterministically.
type syncNotifier struct {
	ns *NotificationService
}

func (n *syncNotifier) NotifyStatusChange(report *models.Report, oldStatus, newStatus models.ReportStatus, reason string) {
	n.ns.Dispatch(report, oldStatus, newStatus, reason)
}

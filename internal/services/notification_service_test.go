package services

import (
	"testing"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationTestEnv() (*fakeUserRepo, *fakeNotificationRepo, *fakeEmailSender, *NotificationService) {
	users := newFakeUserRepo()
	notifications := newFakeNotificationRepo()
	emails := &fakeEmailSender{}
	return users, notifications, emails, NewNotificationService(notifications, users, emails)
}

func ownedReport(ownerID uint) *models.Report {
	return &models.Report{
		ID:          7,
		UserID:      &ownerID,
		Title:       "Pothole",
		Description: "Deep pothole",
		Category:    models.CategoryRoads,
		Photos:      []string{"a.jpg"},
		Status:      models.StatusAssigned,
	}
}

func TestDispatchPersistsNotification(t *testing.T) {
	users, notifications, emails, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com", EmailNotifications: true, UserType: models.UserTypeCitizen}
	require.NoError(t, users.Create(owner))

	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")

	list, err := notifications.ListForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n := list[0]
	assert.Equal(t, "Report Status Updated: Pothole", n.Title)
	assert.Contains(t, n.Message, string(models.StatusPending))
	assert.Contains(t, n.Message, string(models.StatusAssigned))
	assert.Contains(t, n.Message, "technical office")
	require.NotNil(t, n.ReportID)
	assert.Equal(t, uint(7), *n.ReportID)
	assert.False(t, n.IsRead)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, owner.Email, emails.sent[0].To)
}

func TestDispatchRejectionIncludesReason(t *testing.T) {
	users, notifications, _, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com", EmailNotifications: false}
	require.NoError(t, users.Create(owner))

	report := ownedReport(owner.ID)
	report.Status = models.StatusRejected
	ns.Dispatch(report, models.StatusPending, models.StatusRejected, "Duplicate")

	list, err := notifications.ListForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Message, "Duplicate")
	assert.Contains(t, list[0].Message, string(models.StatusRejected))
}

func TestDispatchAnonymousIsNoop(t *testing.T) {
	_, notifications, emails, ns := newNotificationTestEnv()

	report := ownedReport(1)
	report.UserID = nil
	ns.Dispatch(report, models.StatusPending, models.StatusAssigned, "")

	assert.Empty(t, notifications.notifications)
	assert.Empty(t, emails.sent)
}

func TestDispatchRespectsEmailOptOut(t *testing.T) {
	users, notifications, emails, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com", EmailNotifications: false}
	require.NoError(t, users.Create(owner))

	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")

	assert.Len(t, notifications.notifications, 1)
	assert.Empty(t, emails.sent)
}

func TestDispatchEmailFailureStillPersists(t *testing.T) {
	users, notifications, emails, ns := newNotificationTestEnv()
	emails.fail = true

	owner := &models.User{Email: "owner@example.com", EmailNotifications: true}
	require.NoError(t, users.Create(owner))

	// Must not panic or surface the email failure.
	ns.Dispatch(ownedReport(owner.ID), models.StatusAssigned, models.StatusResolved, "")

	assert.Len(t, notifications.notifications, 1)
}

func TestDispatchStorageFailureIsSwallowed(t *testing.T) {
	users, notifications, emails, ns := newNotificationTestEnv()
	notifications.failCreate = true

	owner := &models.User{Email: "owner@example.com", EmailNotifications: true}
	require.NoError(t, users.Create(owner))

	// Persistence failure is logged and swallowed; no email goes out for
	// a notification that was never recorded.
	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")

	assert.Empty(t, notifications.notifications)
	assert.Empty(t, emails.sent)
}

func TestDispatchUnknownOwnerIsSwallowed(t *testing.T) {
	_, notifications, _, ns := newNotificationTestEnv()

	ns.Dispatch(ownedReport(99), models.StatusPending, models.StatusAssigned, "")

	assert.Empty(t, notifications.notifications)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	users, notifications, _, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com"}
	require.NoError(t, users.Create(owner))
	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")

	id := notifications.notifications[0].ID

	// Another user cannot mark it read: reads as not found.
	err := ns.MarkRead(id, owner.ID+1)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	require.NoError(t, ns.MarkRead(id, owner.ID))

	unread, err := ns.ListUnread(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkAllReadReturnsCount(t *testing.T) {
	users, _, _, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com"}
	require.NoError(t, users.Create(owner))

	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")
	ns.Dispatch(ownedReport(owner.ID), models.StatusAssigned, models.StatusProgress, "")
	ns.Dispatch(ownedReport(owner.ID), models.StatusProgress, models.StatusResolved, "")

	count, err := ns.MarkAllRead(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Second pass has nothing left to change.
	count, err = ns.MarkAllRead(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteNotificationScopedToRecipient(t *testing.T) {
	users, notifications, _, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com"}
	require.NoError(t, users.Create(owner))
	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")

	id := notifications.notifications[0].ID

	var notFoundErr *NotFoundError
	require.ErrorAs(t, ns.Delete(id, owner.ID+1), &notFoundErr)

	require.NoError(t, ns.Delete(id, owner.ID))

	// Deleting again reads as not found.
	require.ErrorAs(t, ns.Delete(id, owner.ID), &notFoundErr)
}

func TestListForUserNewestFirst(t *testing.T) {
	users, _, _, ns := newNotificationTestEnv()

	owner := &models.User{Email: "owner@example.com"}
	require.NoError(t, users.Create(owner))

	ns.Dispatch(ownedReport(owner.ID), models.StatusPending, models.StatusAssigned, "")
	ns.Dispatch(ownedReport(owner.ID), models.StatusAssigned, models.StatusResolved, "")

	list, err := ns.ListForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].ID > list[1].ID)
}

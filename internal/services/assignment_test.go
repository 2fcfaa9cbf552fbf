package services

import (
	"testing"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOfficerCountsOnlyActiveStatuses(t *testing.T) {
	users := newFakeUserRepo()
	reports := newFakeReportRepo()
	selector := NewAssignmentSelector(users, reports)

	a := &models.User{Email: "a@example.com", Roles: []string{string(models.RoleEnvironment)}}
	b := &models.User{Email: "b@example.com", Roles: []string{string(models.RoleEnvironment)}}
	require.NoError(t, users.Create(a))
	require.NoError(t, users.Create(b))

	// a's only assignments are terminal: they do not count as load.
	reports.put(&models.Report{Status: models.StatusResolved, OfficerID: &a.ID,
		Title: "t", Description: "d", Category: models.CategoryOther, Photos: []string{"p"}})
	reports.put(&models.Report{Status: models.StatusRejected, OfficerID: &a.ID,
		Title: "t", Description: "d", Category: models.CategoryOther, Photos: []string{"p"}})
	// b carries one live report.
	reports.put(&models.Report{Status: models.StatusAssigned, OfficerID: &b.ID,
		Title: "t", Description: "d", Category: models.CategoryOther, Photos: []string{"p"}})

	selected, err := selector.SelectOfficer(models.RoleEnvironment)
	require.NoError(t, err)
	assert.Equal(t, a.ID, selected.ID)
}

func TestSelectOfficerCountsDelegatedWork(t *testing.T) {
	users := newFakeUserRepo()
	reports := newFakeReportRepo()
	selector := NewAssignmentSelector(users, reports)

	a := &models.User{Email: "a@example.com", Roles: []string{string(models.RoleMobility), string(models.RoleExternalMaintainer)}}
	b := &models.User{Email: "b@example.com", Roles: []string{string(models.RoleMobility)}}
	require.NoError(t, users.Create(a))
	require.NoError(t, users.Create(b))

	// Work delegated to a as maintainer counts toward a's load too.
	reports.put(&models.Report{Status: models.StatusProgress, ExternalMaintainerID: &a.ID,
		Title: "t", Description: "d", Category: models.CategoryOther, Photos: []string{"p"}})

	selected, err := selector.SelectOfficer(models.RoleMobility)
	require.NoError(t, err)
	assert.Equal(t, b.ID, selected.ID)
}

func TestSelectOfficerNoHolders(t *testing.T) {
	users := newFakeUserRepo()
	reports := newFakeReportRepo()
	selector := NewAssignmentSelector(users, reports)

	_, err := selector.SelectOfficer(models.RoleWasteManagement)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, err.Error(), "no workers found")
}

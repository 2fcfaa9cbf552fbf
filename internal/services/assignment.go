package services

import (
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

// AssignmentSelector picks the officer a newly accepted report goes to.
type AssignmentSelector struct {
	users   repository.UserRepository
	reports repository.ReportRepository
}

func NewAssignmentSelector(users repository.UserRepository, reports repository.ReportRepository) *AssignmentSelector {
	return &AssignmentSelector{users: users, reports: reports}
}

// SelectOfficer returns the least-loaded user holding the technical role.
// Load counts reports in a non-terminal assigned state. Ties break on the
// lowest user id; ListByRole returns users ordered by id, so keeping the
// first minimum is enough. No holder at all is a conflict the review
// surfaces as "no workers found".
func (as *AssignmentSelector) SelectOfficer(role models.Role) (*models.User, error) {
	officers, err := as.users.ListByRole(role)
	if err != nil {
		return nil, err
	}
	if len(officers) == 0 {
		return nil, NewConflictError("no workers found for role %s", role)
	}

	var selected *models.User
	var minLoad int64
	for i := range officers {
		load, err := as.reports.CountActiveAssignments(officers[i].ID)
		if err != nil {
			return nil, err
		}
		if selected == nil || load < minLoad {
			selected = &officers[i]
			minLoad = load
		}
	}

	return selected, nil
}

package services

import (
	"strings"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

// MessageService is the citizen-visible channel on a report. Write
// eligibility: the owner, the assigned officer, the delegated maintainer
// or an admin. Read eligibility: the owner for their own report, any
// assigned or admin caller regardless of ownership.
type MessageService struct {
	messages repository.MessageRepository
	reports  repository.ReportRepository
	users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, reports repository.ReportRepository, users repository.UserRepository) *MessageService {
	return &MessageService{messages: messages, reports: reports, users: users}
}

func (ms *MessageService) SendMessage(reportID, senderID uint, text string) (*models.Message, error) {
	report, err := ms.loadReport(reportID)
	if err != nil {
		return nil, err
	}
	if !ms.canParticipate(report, senderID) {
		return nil, NewAuthorizationError("user %d may not write to this report's thread", senderID)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, NewValidationError("message text must not be empty")
	}

	message := models.Message{
		ReportID: reportID,
		SenderID: senderID,
		Text:     trimmed,
	}
	if err := ms.messages.Create(&message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (ms *MessageService) ListMessages(reportID, callerID uint) ([]models.Message, error) {
	report, err := ms.loadReport(reportID)
	if err != nil {
		return nil, err
	}
	if !ms.canParticipate(report, callerID) {
		return nil, NewAuthorizationError("user %d may not read this report's thread", callerID)
	}
	return ms.messages.ListForReport(reportID)
}

// canParticipate is the shared "who is attached to this report" check:
// the owner, the current assignees, or an admin.
func (ms *MessageService) canParticipate(report *models.Report, userID uint) bool {
	if report.IsOwner(userID) || report.IsAssignee(userID) {
		return true
	}
	user, err := ms.users.GetByID(userID)
	if err != nil {
		return false
	}
	return models.IsAdmin(user.UserType)
}

func (ms *MessageService) loadReport(reportID uint) (*models.Report, error) {
	report, err := ms.reports.GetByID(reportID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NewNotFoundError("report %d not found", reportID)
		}
		return nil, err
	}
	return report, nil
}

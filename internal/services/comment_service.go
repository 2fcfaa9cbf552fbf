package services

import (
	"strings"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
)

// CommentService is the staff-only coordination channel. Eligibility is
// re-checked against the report's live assignment on every call, never
// cached from the session.
type CommentService struct {
	comments repository.CommentRepository
	reports  repository.ReportRepository
}

func NewCommentService(comments repository.CommentRepository, reports repository.ReportRepository) *CommentService {
	return &CommentService{comments: comments, reports: reports}
}

func (cs *CommentService) AddComment(reportID, authorID uint, text string) (*models.InternalComment, error) {
	report, err := cs.loadReport(reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsAssignee(authorID) {
		return nil, NewAuthorizationError("only the assigned officer or external maintainer may comment on this report")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, NewValidationError("comment text must not be empty")
	}

	comment := models.InternalComment{
		ReportID: reportID,
		AuthorID: authorID,
		Text:     trimmed,
	}
	if err := cs.comments.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (cs *CommentService) ListComments(reportID, callerID uint) ([]models.InternalComment, error) {
	report, err := cs.loadReport(reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsAssignee(callerID) {
		return nil, NewAuthorizationError("only the assigned officer or external maintainer may read these comments")
	}
	return cs.comments.ListForReport(reportID)
}

func (cs *CommentService) loadReport(reportID uint) (*models.Report, error) {
	report, err := cs.reports.GetByID(reportID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, NewNotFoundError("report %d not found", reportID)
		}
		return nil, err
	}
	return report, nil
}

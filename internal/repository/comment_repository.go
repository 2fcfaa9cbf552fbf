package repository

import (
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.InternalComment) error
	ListForReport(reportID uint) ([]models.InternalComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.InternalComment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) ListForReport(reportID uint) ([]models.InternalComment, error) {
	var comments []models.InternalComment
	err := r.db.Preload("Author").Where("report_id = ?", reportID).
		Order("created_at asc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

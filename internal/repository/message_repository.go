package repository

import (
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	ListForReport(reportID uint) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) ListForReport(reportID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Where("report_id = ?", reportID).
		Order("created_at asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

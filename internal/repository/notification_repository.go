package repository

import (
	"arena_web/internal/models"
	"arena_web/internal/storage"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByUserID(userID uint) ([]models.Notification, error)
}

type notificationRepository struct {
	db *storage.PostgresDB
}

func NewNotificationRepository(db *storage.PostgresDB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByUserID(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

package repository

import (
	"fmt"

	"gorm.io/gorm"

	"campus-errand-api/models"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID string) ([]models.Notification, error)
	MarkRead(id string) error
}

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *gormNotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *gormNotificationRepository) MarkRead(id string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", models.ErrNotFound, id)
	}
	return nil
}

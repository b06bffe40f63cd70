package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus-errand-api/models"
	"campus-errand-api/repository"
)

// NotificationService creates and serves user-facing messages.
type NotificationService struct {
	notifications repository.NotificationRepository
	log           *logrus.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, log *logrus.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

// Notify is fire-and-forget: notifications are a convenience layer, so a
// failed insert is logged and swallowed rather than failing the operation
// that triggered it.
func (s *NotificationService) Notify(userID, title, message string) {
	notification := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.notifications.Create(notification); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"title":   title,
		}).Error("failed to create notification")
	}
}

func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	return s.notifications.ListByUser(userID)
}

func (s *NotificationService) MarkRead(id string) error {
	return s.notifications.MarkRead(id)
}

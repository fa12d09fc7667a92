package services

import (
	"context"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/sirupsen/logrus"

	"github.com/lqitha/lqitha-backend/db"
	"github.com/lqitha/lqitha-backend/models"
)

// Messenger abstracts the push provider so services and tests never touch the
// FCM SDK directly.
type Messenger interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

type fcmMessenger struct {
	client *messaging.Client
}

// NewFCMMessenger wraps a Firebase messaging client.
func NewFCMMessenger(client *messaging.Client) Messenger {
	return &fcmMessenger{client: client}
}

func (m *fcmMessenger) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := m.client.Send(ctx, msg)
	return err
}

type NotificationService interface {
	// Notify persists an in-app notification and pushes it to the user's
	// device. Both steps are best-effort; the first error is returned so the
	// caller can log it, but callers never fail on it.
	Notify(userID uint, title, message, notifType, relatedPostID string) error
	// SendPush delivers a push only. A user without a device token is a
	// silent skip: (false, nil).
	SendPush(userID uint, title, body string, data map[string]string) (bool, error)
	ListNotifications(userID uint, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, id uint) (*models.Notification, error)
	MarkAllRead(userID uint) (int64, error)
	ListCreatedAfter(userID uint, after time.Time) ([]models.Notification, error)
}

type notificationService struct {
	authRepo  db.AuthRepository
	notifRepo db.NotificationRepository
	messenger Messenger
	log       *logrus.Logger
}

func NewNotificationService(authRepo db.AuthRepository, notifRepo db.NotificationRepository, messenger Messenger, log *logrus.Logger) NotificationService {
	return &notificationService{
		authRepo:  authRepo,
		notifRepo: notifRepo,
		messenger: messenger,
		log:       log,
	}
}

func (s *notificationService) Notify(userID uint, title, message, notifType, relatedPostID string) error {
	var firstErr error

	n := &models.Notification{
		UserID:        userID,
		Title:         title,
		Message:       message,
		Type:          notifType,
		RelatedPostID: relatedPostID,
	}
	if err := s.notifRepo.CreateNotification(n); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"type":    notifType,
			"err":     err.Error(),
		}).Warn("could not persist notification")
		firstErr = err
	}

	data := map[string]string{"type": notifType}
	if relatedPostID != "" {
		data["post_id"] = relatedPostID
	}
	if _, err := s.SendPush(userID, title, message, data); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"type":    notifType,
			"err":     err.Error(),
		}).Warn("could not push notification")
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *notificationService) SendPush(userID uint, title, body string, data map[string]string) (bool, error) {
	if s.messenger == nil {
		return false, nil
	}

	token, err := s.authRepo.GetFCMToken(userID)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.messenger.Send(ctx, token, title, body, data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *notificationService) ListNotifications(userID uint, unreadOnly bool) ([]models.Notification, error) {
	return s.notifRepo.ListNotifications(models.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
	})
}

func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifRepo.CountUnread(userID)
}

func (s *notificationService) MarkRead(userID, id uint) (*models.Notification, error) {
	return s.notifRepo.MarkRead(userID, id)
}

func (s *notificationService) MarkAllRead(userID uint) (int64, error) {
	return s.notifRepo.MarkAllRead(userID)
}

func (s *notificationService) ListCreatedAfter(userID uint, after time.Time) ([]models.Notification, error) {
	return s.notifRepo.ListCreatedAfter(userID, after)
}

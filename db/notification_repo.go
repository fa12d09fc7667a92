package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

type NotificationRepository interface {
	CreateNotification(n *models.Notification) error
	ListNotifications(filter models.NotificationFilter) ([]models.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID, id uint) (*models.Notification, error)
	MarkAllRead(userID uint) (int64, error)
	ListCreatedAfter(userID uint, after time.Time) ([]models.Notification, error)
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) CreateNotification(n *models.Notification) error {
	if err := r.DB.Create(n).Error; err != nil {
		return errors.Wrap(err, "could not create notification")
	}
	return nil
}

func (r *notificationRepo) ListNotifications(filter models.NotificationFilter) ([]models.Notification, error) {
	query := r.DB.Model(&models.Notification{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, errors.Wrap(err, "could not list notifications")
	}
	return notifications, nil
}

func (r *notificationRepo) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead is scoped to the owner so one user cannot flip another's flags.
func (r *notificationRepo) MarkRead(userID, id uint) (*models.Notification, error) {
	res := r.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "could not mark notification read")
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var n models.Notification
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) MarkAllRead(userID uint) (int64, error) {
	res := r.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "could not mark notifications read")
	}
	return res.RowsAffected, nil
}

func (r *notificationRepo) ListCreatedAfter(userID uint, after time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("user_id = ? AND created_at > ?", userID, after).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list notifications")
	}
	return notifications, nil
}

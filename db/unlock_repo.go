package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

type UnlockRepository interface {
	CreateUnlock(unlock *models.ContactUnlock) error
	FindUnlock(userID uint, postID string) (*models.ContactUnlock, error)
	ListUnlocksByUser(userID uint) ([]models.ContactUnlock, error)
}

type unlockRepo struct {
	DB *gorm.DB
}

func NewUnlockRepo(db *GormDB) UnlockRepository {
	return &unlockRepo{db.DB}
}

func (r *unlockRepo) CreateUnlock(unlock *models.ContactUnlock) error {
	if err := r.DB.Create(unlock).Error; err != nil {
		return errors.Wrap(err, "could not create contact unlock")
	}
	return nil
}

func (r *unlockRepo) FindUnlock(userID uint, postID string) (*models.ContactUnlock, error) {
	var unlock models.ContactUnlock
	err := r.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&unlock).Error
	if err != nil {
		return nil, err
	}
	return &unlock, nil
}

func (r *unlockRepo) ListUnlocksByUser(userID uint) ([]models.ContactUnlock, error) {
	var unlocks []models.ContactUnlock
	if err := r.DB.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return nil, errors.Wrap(err, "could not list unlocks")
	}
	return unlocks, nil
}

package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/db"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
)

type UnlockService interface {
	// CreateUnlock records that user unlocked the contact info behind a
	// post. Repeated unlocks of the same post return the existing record.
	CreateUnlock(user *models.User, request *models.CreateUnlockRequest) (*models.ContactUnlock, error)
	ListUnlocks(userID uint) ([]models.ContactUnlock, error)
}

type unlockService struct {
	unlockRepo db.UnlockRepository
	postRepo   db.PostRepository
	notifier   NotificationService
	log        *logrus.Logger
}

func NewUnlockService(unlockRepo db.UnlockRepository, postRepo db.PostRepository, notifier NotificationService, log *logrus.Logger) UnlockService {
	return &unlockService{
		unlockRepo: unlockRepo,
		postRepo:   postRepo,
		notifier:   notifier,
		log:        log,
	}
}

func (s *unlockService) CreateUnlock(user *models.User, request *models.CreateUnlockRequest) (*models.ContactUnlock, error) {
	kind, err := models.ParsePostKind(request.PostType)
	if err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	post, err := s.postRepo.GetPostByID(kind, request.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching post: %w", err)
	}

	existing, err := s.unlockRepo.FindUnlock(user.ID, request.PostID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking unlock: %w", err)
	}

	unlock := &models.ContactUnlock{
		UserID:   user.ID,
		PostID:   request.PostID,
		PostType: string(kind),
	}
	if err := s.unlockRepo.CreateUnlock(unlock); err != nil {
		return nil, fmt.Errorf("error creating unlock: %w", err)
	}

	// Owners unlocking their own post don't need to hear about it.
	if post.UserID != user.ID {
		message := fmt.Sprintf("%s unlocked your contact info", user.Username)
		if err := s.notifier.Notify(post.UserID, "Contact Unlocked! 📩", message, models.NotifUnlock, post.ID); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": post.UserID,
				"post_id": post.ID,
				"err":     err.Error(),
			}).Warn("unlock notification not delivered")
		}
	}

	return unlock, nil
}

func (s *unlockService) ListUnlocks(userID uint) ([]models.ContactUnlock, error) {
	unlocks, err := s.unlockRepo.ListUnlocksByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error listing unlocks: %w", err)
	}
	return unlocks, nil
}

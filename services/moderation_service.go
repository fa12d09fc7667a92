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

// Point deltas attached to moderation outcomes.
const (
	PointsPostApproved = 10
	PointsPostRejected = -5
)

// ErrRewardNotRecorded flags a partial success: the status change is
// persisted but the reward side effect failed. Handlers answer 200 with a
// warning so the admin can retry the reward.
var ErrRewardNotRecorded = errors.New("post status updated but reward not recorded")

type ModerationService interface {
	UpdatePostStatus(kind models.PostKind, postID, status string) (*models.Post, error)
	GetStatistics() (*models.Statistics, error)
}

type moderationService struct {
	postRepo db.PostRepository
	authRepo db.AuthRepository
	rewards  RewardService
	notifier NotificationService
	log      *logrus.Logger
}

func NewModerationService(postRepo db.PostRepository, authRepo db.AuthRepository, rewards RewardService, notifier NotificationService, log *logrus.Logger) ModerationService {
	return &moderationService{
		postRepo: postRepo,
		authRepo: authRepo,
		rewards:  rewards,
		notifier: notifier,
		log:      log,
	}
}

func (s *moderationService) UpdatePostStatus(kind models.PostKind, postID, status string) (*models.Post, error) {
	if !models.IsValidStatus(status) {
		return nil, apiError.New(fmt.Sprintf("invalid status %q", status), http.StatusBadRequest)
	}

	post, err := s.postRepo.GetPostByID(kind, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching post: %w", err)
	}

	// Replaying the same status is a no-op so a retried request cannot
	// award points twice.
	if post.Status == status {
		return post, nil
	}

	updated, err := s.postRepo.UpdatePostStatus(kind, postID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error updating post status: %w", err)
	}

	var (
		delta       int
		txKind      string
		title       string
		message     string
		description string
	)
	switch status {
	case models.StatusApproved:
		delta = PointsPostApproved
		txKind = models.TxPostApproved
		title = "Post Approved! ✅"
		message = fmt.Sprintf("Your %s post is now visible to the community", kind)
		description = "Post approved"
	case models.StatusRejected:
		delta = PointsPostRejected
		txKind = models.TxPostRejected
		title = "Post Rejected ❌"
		message = fmt.Sprintf("Your %s post did not pass review", kind)
		description = "Post rejected"
	default:
		return updated, nil
	}

	if err := s.notifier.Notify(updated.UserID, title, message, models.NotifStatus, updated.ID); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": updated.UserID,
			"post_id": updated.ID,
			"err":     err.Error(),
		}).Warn("status notification not delivered")
	}

	_, err = s.rewards.AwardPoints(AwardInput{
		UserID:          updated.UserID,
		Points:          delta,
		TransactionType: txKind,
		Description:     description,
		RelatedPostID:   updated.ID,
		RelatedPostType: string(kind),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": updated.UserID,
			"post_id": updated.ID,
			"status":  status,
			"err":     err.Error(),
		}).Error("reward not recorded after status change")
		return updated, ErrRewardNotRecorded
	}

	return updated, nil
}

func (s *moderationService) GetStatistics() (*models.Statistics, error) {
	stats := &models.Statistics{}

	for _, kind := range []models.PostKind{models.PostKindFound, models.PostKindLost} {
		total, err := s.postRepo.CountPosts(kind)
		if err != nil {
			return nil, fmt.Errorf("error counting %s posts: %w", kind, err)
		}
		stats.TotalPosts += total

		pending, err := s.postRepo.CountPostsByStatus(kind, models.StatusPending)
		if err != nil {
			return nil, fmt.Errorf("error counting pending %s posts: %w", kind, err)
		}
		stats.PendingPosts += pending

		approved, err := s.postRepo.CountPostsByStatus(kind, models.StatusApproved)
		if err != nil {
			return nil, fmt.Errorf("error counting approved %s posts: %w", kind, err)
		}
		stats.ApprovedPosts += approved

		rejected, err := s.postRepo.CountPostsByStatus(kind, models.StatusRejected)
		if err != nil {
			return nil, fmt.Errorf("error counting rejected %s posts: %w", kind, err)
		}
		stats.RejectedPosts += rejected
	}

	users, err := s.authRepo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	stats.TotalUsers = users

	return stats, nil
}

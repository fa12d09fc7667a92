package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/db"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
)

// PointsPostCreated is awarded for every new post submission.
const PointsPostCreated = 5

type PostService interface {
	CreatePost(kind models.PostKind, userID uint, request *models.CreatePostRequest) (*models.Post, error)
	GetPost(kind models.PostKind, id string) (*models.Post, error)
	ListPosts(kind models.PostKind, filter models.PostFilter) ([]models.Post, error)
	// DeletePost removes a post on behalf of requester, who must be the
	// owner or an admin.
	DeletePost(kind models.PostKind, id string, requester *models.User) error
}

type postService struct {
	postRepo db.PostRepository
	rewards  RewardService
	log      *logrus.Logger
}

func NewPostService(postRepo db.PostRepository, rewards RewardService, log *logrus.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		rewards:  rewards,
		log:      log,
	}
}

func (s *postService) CreatePost(kind models.PostKind, userID uint, request *models.CreatePostRequest) (*models.Post, error) {
	if err := models.NormalizeStrings(request); err != nil {
		return nil, apiError.ErrBadRequest
	}

	post := &models.Post{
		UserID:      userID,
		Photo:       request.Photo,
		Description: request.Description,
		Location:    request.Location,
		Category:    request.Category,
		Status:      models.StatusPending,
	}
	post, err := s.postRepo.CreatePost(kind, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	// The submission reward is best-effort; the post is already saved.
	_, err = s.rewards.AwardPoints(AwardInput{
		UserID:          userID,
		Points:          PointsPostCreated,
		TransactionType: models.TxPostCreated,
		Description:     "Post created",
		RelatedPostID:   post.ID,
		RelatedPostType: string(kind),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"post_id": post.ID,
			"err":     err.Error(),
		}).Warn("post creation reward not recorded")
	}

	return post, nil
}

func (s *postService) GetPost(kind models.PostKind, id string) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching post: %w", err)
	}
	return post, nil
}

func (s *postService) ListPosts(kind models.PostKind, filter models.PostFilter) ([]models.Post, error) {
	posts, err := s.postRepo.ListPosts(kind, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) DeletePost(kind models.PostKind, id string, requester *models.User) error {
	post, err := s.postRepo.GetPostByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		return fmt.Errorf("error fetching post: %w", err)
	}

	if post.UserID != requester.ID && !requester.IsAdmin() {
		return apiError.ErrForbidden
	}

	if err := s.postRepo.DeletePost(kind, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

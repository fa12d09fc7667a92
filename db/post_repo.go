package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

type PostRepository interface {
	CreatePost(kind models.PostKind, post *models.Post) (*models.Post, error)
	GetPostByID(kind models.PostKind, id string) (*models.Post, error)
	ListPosts(kind models.PostKind, filter models.PostFilter) ([]models.Post, error)
	DeletePost(kind models.PostKind, id string) error
	UpdatePostStatus(kind models.PostKind, id string, status string) (*models.Post, error)
	CountPosts(kind models.PostKind) (int64, error)
	CountPostsByStatus(kind models.PostKind, status string) (int64, error)
}

type postRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *GormDB) PostRepository {
	return &postRepo{db.DB}
}

func (r *postRepo) table(kind models.PostKind) *gorm.DB {
	return r.DB.Table(kind.TableName())
}

func (r *postRepo) CreatePost(kind models.PostKind, post *models.Post) (*models.Post, error) {
	if err := r.table(kind).Create(post).Error; err != nil {
		return nil, errors.Wrapf(err, "could not create %s post", kind)
	}
	return post, nil
}

func (r *postRepo) GetPostByID(kind models.PostKind, id string) (*models.Post, error) {
	var post models.Post
	if err := r.table(kind).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) ListPosts(kind models.PostKind, filter models.PostFilter) ([]models.Post, error) {
	query := r.table(kind).Where("deleted_at IS NULL")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR location ILIKE ? OR category ILIKE ?", like, like, like)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, errors.Wrapf(err, "could not list %s posts", kind)
	}
	return posts, nil
}

func (r *postRepo) DeletePost(kind models.PostKind, id string) error {
	res := r.table(kind).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "could not delete %s post", kind)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepo) UpdatePostStatus(kind models.PostKind, id string, status string) (*models.Post, error) {
	res := r.table(kind).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "could not update %s post status", kind)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetPostByID(kind, id)
}

func (r *postRepo) CountPosts(kind models.PostKind) (int64, error) {
	var count int64
	err := r.table(kind).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *postRepo) CountPostsByStatus(kind models.PostKind, status string) (int64, error) {
	var count int64
	err := r.table(kind).Where("status = ? AND deleted_at IS NULL", status).Count(&count).Error
	return count, err
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostKind selects between the two structurally identical post tables.
type PostKind string

const (
	PostKindFound PostKind = "found"
	PostKindLost  PostKind = "lost"
)

// TableName maps the kind to its backing table.
func (k PostKind) TableName() string {
	if k == PostKindLost {
		return "lost_posts"
	}
	return "found_posts"
}

// ParsePostKind validates a kind coming off the URL.
func ParsePostKind(s string) (PostKind, error) {
	switch PostKind(s) {
	case PostKindFound, PostKindLost:
		return PostKind(s), nil
	default:
		return "", fmt.Errorf("unknown post kind: %q", s)
	}
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsValidStatus reports whether s belongs to the closed moderation status set.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Post is a lost or found item submission awaiting or having received moderation.
// The same shape backs both found_posts and lost_posts.
type Post struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Photo       string         `json:"photo,omitempty"`
	Description string         `json:"description" conform:"trim"`
	Location    string         `json:"location" conform:"trim"`
	Category    string         `json:"category" conform:"trim"`
	Status      string         `json:"status" gorm:"default:pending;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns the post id
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	return nil
}

type CreatePostRequest struct {
	Photo       string `json:"photo"`
	Description string `json:"description" binding:"required" conform:"trim"`
	Location    string `json:"location" conform:"trim"`
	Category    string `json:"category" conform:"trim"`
}

// PostFilter narrows post listings.
type PostFilter struct {
	Status string
	UserID uint
	Search string
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

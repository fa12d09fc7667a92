package models

// ContactUnlock records that a user unlocked the contact information behind a
// post. One row per (user, post), creation is idempotent.
type ContactUnlock struct {
	Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	PostID   string `json:"post_id" gorm:"index;not null"`
	PostType string `json:"post_type"`
}

type CreateUnlockRequest struct {
	PostID   string `json:"post_id" binding:"required"`
	PostType string `json:"post_type" binding:"required"`
}

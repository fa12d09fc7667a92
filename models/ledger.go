package models

// Transaction kinds recorded in the trust point ledger.
const (
	TxPostCreated  = "post_created"
	TxPostApproved = "post_approved"
	TxPostRejected = "post_rejected"
	TxManualAward  = "manual_award"
)

// TrustPointTransaction is one immutable ledger entry: a signed point delta
// with its cause. Rows are only ever appended, never updated or deleted.
type TrustPointTransaction struct {
	Model
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	Points          int    `json:"points"`
	TransactionType string `json:"transaction_type"`
	Description     string `json:"description"`
	RelatedPostID   string `json:"related_post_id,omitempty"`
	RelatedPostType string `json:"related_post_type,omitempty"`
}

type ManualAwardRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	Points          *int   `json:"points" binding:"required"`
	TransactionType string `json:"transaction_type"`
	Description     string `json:"description"`
}

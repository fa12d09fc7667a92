package models

// Notification types.
const (
	NotifSystem      = "system"
	NotifPointChange = "point_change"
	NotifStatus      = "status_update"
	NotifUnlock      = "contact_unlock"
)

// Notification represents an in-app notification for a user. The read flag is
// the only field ever mutated after creation.
type Notification struct {
	Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	RelatedPostID string `json:"related_post_id,omitempty"`
	IsRead        bool   `json:"is_read" gorm:"default:false"`
}

// NotificationFilter narrows notification listings.
type NotificationFilter struct {
	UserID     uint
	UnreadOnly bool
	Type       string
}

package models

// Statistics is the admin dashboard summary. Counts are grand totals across
// both post tables.
type Statistics struct {
	TotalPosts    int64 `json:"total_posts"`
	PendingPosts  int64 `json:"pending_posts"`
	ApprovedPosts int64 `json:"approved_posts"`
	RejectedPosts int64 `json:"rejected_posts"`
	TotalUsers    int64 `json:"total_users"`
}

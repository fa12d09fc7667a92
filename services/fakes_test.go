package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

// In-memory repository fakes. They honor the same not-found contract as the
// gorm implementations: gorm.ErrRecordNotFound for missing rows.

type fakeAuthRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeAuthRepo) IsEmailExist(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUserByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAuthRepo) EditUserProfile(userID uint, updates map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["phone_number"]; ok {
		u.PhoneNumber = v.(string)
	}
	if v, ok := updates["photo"]; ok {
		u.Photo = v.(string)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAuthRepo) UpdatePassword(userID uint, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (f *fakeAuthRepo) UpdateFCMToken(userID uint, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FCMToken = token
	return nil
}

func (f *fakeAuthRepo) GetFCMToken(userID uint) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return "", nil
	}
	return u.FCMToken, nil
}

func (f *fakeAuthRepo) IncrementPoints(userID uint, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	u.Points += delta
	return u.Points, nil
}

func (f *fakeAuthRepo) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]models.LeaderboardEntry, 0, len(f.users))
	for _, u := range f.users {
		entries = append(entries, models.LeaderboardEntry{
			ID:       u.ID,
			Username: u.Username,
			Photo:    u.Photo,
			Points:   u.Points,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (f *fakeAuthRepo) CountUsers() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeLedgerRepo struct {
	mu         sync.Mutex
	txs        []models.TrustPointTransaction
	nextID     uint
	failCreate bool
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{nextID: 1}
}

func (f *fakeLedgerRepo) CreateTransaction(tx *models.TrustPointTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("ledger unavailable")
	}
	tx.ID = f.nextID
	f.nextID++
	tx.CreatedAt = time.Now()
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeLedgerRepo) ListTransactionsByUser(userID uint, limit int) ([]models.TrustPointTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TrustPointTransaction
	for i := len(f.txs) - 1; i >= 0; i-- {
		if f.txs[i].UserID == userID {
			out = append(out, f.txs[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumPointsByUser(userID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, tx := range f.txs {
		if tx.UserID == userID {
			total += tx.Points
		}
	}
	return total, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        uint
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("notifications unavailable")
	}
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) ListNotifications(filter models.NotificationFilter) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if filter.UserID != 0 && n.UserID != filter.UserID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(userID, id uint) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			cp := f.notifications[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotificationRepo) ListCreatedAfter(userID uint, after time.Time) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && n.CreatedAt.After(after) {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[models.PostKind]map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[models.PostKind]map[string]*models.Post{
		models.PostKindFound: {},
		models.PostKindLost:  {},
	}}
}

func (f *fakePostRepo) CreatePost(kind models.PostKind, post *models.Post) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID == "" {
		post.ID = "post-" + time.Now().Format("150405.000000000")
	}
	if post.Status == "" {
		post.Status = models.StatusPending
	}
	post.CreatedAt = time.Now()
	cp := *post
	f.posts[kind][post.ID] = &cp
	return post, nil
}

func (f *fakePostRepo) GetPostByID(kind models.PostKind, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[kind][id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) ListPosts(kind models.PostKind, filter models.PostFilter) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts[kind] {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) DeletePost(kind models.PostKind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[kind][id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.posts[kind], id)
	return nil
}

func (f *fakePostRepo) UpdatePostStatus(kind models.PostKind, id string, status string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[kind][id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) CountPosts(kind models.PostKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.posts[kind])), nil
}

func (f *fakePostRepo) CountPostsByStatus(kind models.PostKind, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.posts[kind] {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeUnlockRepo struct {
	mu      sync.Mutex
	unlocks []models.ContactUnlock
	nextID  uint
}

func newFakeUnlockRepo() *fakeUnlockRepo {
	return &fakeUnlockRepo{nextID: 1}
}

func (f *fakeUnlockRepo) CreateUnlock(unlock *models.ContactUnlock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlock.ID = f.nextID
	f.nextID++
	f.unlocks = append(f.unlocks, *unlock)
	return nil
}

func (f *fakeUnlockRepo) FindUnlock(userID uint, postID string) (*models.ContactUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.unlocks {
		if u.UserID == userID && u.PostID == postID {
			cp := u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUnlockRepo) ListUnlocksByUser(userID uint) ([]models.ContactUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ContactUnlock
	for _, u := range f.unlocks {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

type sentPush struct {
	token string
	title string
	body  string
	data  map[string]string
}

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sentPush
	failSend bool
}

func (f *fakeMessenger) Send(_ context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("push provider unavailable")
	}
	f.sent = append(f.sent, sentPush{token: token, title: title, body: body, data: data})
	return nil
}

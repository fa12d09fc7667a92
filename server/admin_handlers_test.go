package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lqitha/lqitha-backend/config"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/logger"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/services"
	"github.com/lqitha/lqitha-backend/services/jwt"
)

const testSecret = "test-secret"

// stubAuthRepo satisfies db.AuthRepository for middleware tests; only
// FindUserByID is exercised.
type stubAuthRepo struct {
	user *models.User
}

func (s *stubAuthRepo) CreateUser(user *models.User) (*models.User, error) { return user, nil }
func (s *stubAuthRepo) IsEmailExist(string) (bool, error)                  { return false, nil }
func (s *stubAuthRepo) FindUserByEmail(string) (*models.User, error)       { return s.user, nil }
func (s *stubAuthRepo) FindUserByID(uint) (*models.User, error)            { return s.user, nil }
func (s *stubAuthRepo) EditUserProfile(uint, map[string]interface{}) (*models.User, error) {
	return s.user, nil
}
func (s *stubAuthRepo) UpdatePassword(uint, string) error { return nil }
func (s *stubAuthRepo) UpdateFCMToken(uint, string) error { return nil }
func (s *stubAuthRepo) GetFCMToken(uint) (string, error)  { return "", nil }
func (s *stubAuthRepo) IncrementPoints(_ uint, delta int) (int, error) {
	return delta, nil
}
func (s *stubAuthRepo) GetLeaderboard(int) ([]models.LeaderboardEntry, error) { return nil, nil }
func (s *stubAuthRepo) CountUsers() (int64, error)                            { return 1, nil }

type stubModeration struct {
	post  *models.Post
	err   error
	stats *models.Statistics

	gotKind   models.PostKind
	gotID     string
	gotStatus string
}

func (s *stubModeration) UpdatePostStatus(kind models.PostKind, postID, status string) (*models.Post, error) {
	s.gotKind, s.gotID, s.gotStatus = kind, postID, status
	return s.post, s.err
}

func (s *stubModeration) GetStatistics() (*models.Statistics, error) {
	return s.stats, nil
}

func newTestServer(t *testing.T, user *models.User, moderation services.ModerationService) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("GIN_MODE", "test")
	return &Server{
		Config:            &config.Config{JWTSecret: testSecret},
		AuthRepository:    &stubAuthRepo{user: user},
		ModerationService: moderation,
		Logger:            logger.New("test"),
	}
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()
	access, _, err := jwt.GenerateTokenPair(user.Email, testSecret, user.Role, user.ID)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	return "Bearer " + access
}

func adminUser() *models.User {
	u := &models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
	u.ID = 1
	return u
}

func doStatusUpdate(t *testing.T, s *Server, user *models.User, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := s.setupRouter()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, user))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdatePostStatusHandler(t *testing.T) {
	post := &models.Post{ID: "abc", UserID: 2, Status: models.StatusApproved}
	moderation := &stubModeration{post: post}
	s := newTestServer(t, adminUser(), moderation)

	w := doStatusUpdate(t, s, adminUser(), "/api/v1/admin/status/found/abc", `{"status":"approved"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}

	if moderation.gotKind != models.PostKindFound || moderation.gotID != "abc" || moderation.gotStatus != "approved" {
		t.Errorf("service called with kind=%q id=%q status=%q", moderation.gotKind, moderation.gotID, moderation.gotStatus)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data.Status != models.StatusApproved {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdatePostStatusPartialSuccess(t *testing.T) {
	post := &models.Post{ID: "abc", UserID: 2, Status: models.StatusApproved}
	moderation := &stubModeration{post: post, err: services.ErrRewardNotRecorded}
	s := newTestServer(t, adminUser(), moderation)

	w := doStatusUpdate(t, s, adminUser(), "/api/v1/admin/status/found/abc", `{"status":"approved"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200 on partial success", w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Post    *models.Post `json:"post"`
			Warning string       `json:"warning"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Data.Warning == "" {
		t.Errorf("missing warning field: %s", w.Body.String())
	}
	if body.Data.Post == nil || body.Data.Post.Status != models.StatusApproved {
		t.Errorf("missing updated post: %s", w.Body.String())
	}
}

func TestUpdatePostStatusNotFound(t *testing.T) {
	moderation := &stubModeration{err: apiError.ErrNotFound}
	s := newTestServer(t, adminUser(), moderation)

	w := doStatusUpdate(t, s, adminUser(), "/api/v1/admin/status/lost/nope", `{"status":"approved"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestUpdatePostStatusBadKind(t *testing.T) {
	moderation := &stubModeration{}
	s := newTestServer(t, adminUser(), moderation)

	w := doStatusUpdate(t, s, adminUser(), "/api/v1/admin/status/stolen/abc", `{"status":"approved"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", w.Code)
	}
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	member := &models.User{Username: "sara", Email: "sara@example.com", Role: models.RoleUser}
	member.ID = 2
	s := newTestServer(t, member, &stubModeration{})

	w := doStatusUpdate(t, s, member, "/api/v1/admin/status/found/abc", `{"status":"approved"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("code = %d, want 403", w.Code)
	}
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	s := newTestServer(t, adminUser(), &stubModeration{})
	router := s.setupRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/status/found/abc", strings.NewReader(`{"status":"approved"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestGetStatisticsHandler(t *testing.T) {
	moderation := &stubModeration{stats: &models.Statistics{TotalPosts: 4, PendingPosts: 1, ApprovedPosts: 2, RejectedPosts: 1, TotalUsers: 3}}
	s := newTestServer(t, adminUser(), moderation)
	router := s.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/statistics", nil)
	req.Header.Set("Authorization", bearerToken(t, adminUser()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var body struct {
		Data models.Statistics `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.ApprovedPosts != 2 || body.Data.TotalUsers != 3 {
		t.Errorf("unexpected stats: %+v", body.Data)
	}
}

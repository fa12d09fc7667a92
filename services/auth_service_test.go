package services

import (
	"errors"
	"testing"

	"github.com/lqitha/lqitha-backend/config"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/logger"
	"github.com/lqitha/lqitha-backend/models"
)

type authFixture struct {
	authRepo  *fakeAuthRepo
	notifRepo *fakeNotificationRepo
	auth      AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	authRepo := newFakeAuthRepo()
	notifRepo := newFakeNotificationRepo()
	log := logger.New("test")
	notifier := NewNotificationService(authRepo, notifRepo, &fakeMessenger{}, log)
	conf := &config.Config{JWTSecret: "test-secret"}
	return &authFixture{
		authRepo:  authRepo,
		notifRepo: notifRepo,
		auth:      NewAuthService(authRepo, notifier, nil, conf, log),
	}
}

func TestSignupUser(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "Sara@Example.com ",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("SignupUser: %v", err)
	}
	if user.Email != "sara@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if user.Points != 0 {
		t.Errorf("points = %d, want 0", user.Points)
	}

	stored, err := f.authRepo.FindUserByEmail("sara@example.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.HashedPassword == "" || stored.HashedPassword == "correct horse battery" {
		t.Error("password was not hashed")
	}

	if len(f.notifRepo.notifications) != 1 {
		t.Fatalf("notifications = %d, want welcome notification", len(f.notifRepo.notifications))
	}
	if f.notifRepo.notifications[0].Title != "Welcome to Lqitha! 🎉" {
		t.Errorf("welcome title = %q", f.notifRepo.notifications[0].Title)
	}
}

func TestSignupUserDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	request := &models.RegisterRequest{Username: "sara", Email: "sara@example.com", Password: "long enough pass"}

	if _, err := f.auth.SignupUser(request); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := f.auth.SignupUser(request)
	if !errors.Is(err, apiError.ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestSignupUserShortPassword(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.auth.SignupUser(&models.RegisterRequest{Username: "sara", Email: "sara@example.com", Password: "short"})
	if err == nil {
		t.Fatal("expected password policy error")
	}
}

func TestSignupNotificationFailureDoesNotFailSignup(t *testing.T) {
	f := newAuthFixture(t)
	f.notifRepo.failCreate = true

	if _, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "long enough pass",
	}); err != nil {
		t.Fatalf("SignupUser: %v", err)
	}
}

func TestLoginUser(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "long enough pass",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	login, err := f.auth.LoginUser(&models.LoginRequest{Email: "sara@example.com", Password: "long enough pass"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Error("missing tokens in login response")
	}
	if login.Username != "sara" {
		t.Errorf("username = %q", login.Username)
	}
}

func TestLoginUserBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "long enough pass",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := f.auth.LoginUser(&models.LoginRequest{Email: "sara@example.com", Password: "wrong"}); !errors.Is(err, apiError.ErrInvalidPassword) {
		t.Errorf("wrong password err = %v, want ErrInvalidPassword", err)
	}
	if _, err := f.auth.LoginUser(&models.LoginRequest{Email: "nobody@example.com", Password: "whatever"}); !errors.Is(err, apiError.ErrInvalidPassword) {
		t.Errorf("unknown email err = %v, want ErrInvalidPassword", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	created, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "long enough pass",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	err = f.auth.ChangePassword(created.ID, &models.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "another long pass",
	})
	if err == nil {
		t.Fatal("expected error for wrong old password")
	}

	err = f.auth.ChangePassword(created.ID, &models.ChangePasswordRequest{
		OldPassword: "long enough pass",
		NewPassword: "another long pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := f.auth.LoginUser(&models.LoginRequest{Email: "sara@example.com", Password: "another long pass"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestEditUserProfile(t *testing.T) {
	f := newAuthFixture(t)
	created, err := f.auth.SignupUser(&models.RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "long enough pass",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := f.auth.EditUserProfile(created.ID, &models.EditProfileRequest{}); err == nil {
		t.Error("expected error for empty update")
	}

	phone := "+212600000000"
	updated, err := f.auth.EditUserProfile(created.ID, &models.EditProfileRequest{PhoneNumber: &phone})
	if err != nil {
		t.Fatalf("EditUserProfile: %v", err)
	}
	if updated.PhoneNumber != phone {
		t.Errorf("phone = %q, want %q", updated.PhoneNumber, phone)
	}
}

package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/config"
	"github.com/lqitha/lqitha-backend/db"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/mailingservices"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/services/jwt"
)

type AuthService interface {
	SignupUser(request *models.RegisterRequest) (*models.UserResponse, error)
	LoginUser(request *models.LoginRequest) (*models.LoginResponse, error)
	CheckEmailExists(email string) (bool, error)
	GetUserProfile(userID uint) (*models.UserResponse, error)
	GetUsername(userID uint) (string, error)
	EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.UserResponse, error)
	ChangePassword(userID uint, request *models.ChangePasswordRequest) error
	UpdateFCMToken(userID uint, token string) error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	notifier NotificationService
	mail     *mailingservices.Mailgun
	log      *logrus.Logger
}

// NewAuthService instantiates an authService. mail may be nil in tests.
func NewAuthService(authRepo db.AuthRepository, notifier NotificationService, mail *mailingservices.Mailgun, conf *config.Config, log *logrus.Logger) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		notifier: notifier,
		mail:     mail,
		log:      log,
	}
}

func (s *authService) SignupUser(request *models.RegisterRequest) (*models.UserResponse, error) {
	if err := models.NormalizeStrings(request); err != nil {
		return nil, apiError.ErrBadRequest
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	exists, err := s.authRepo.IsEmailExist(request.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apiError.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:       request.Username,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		PhoneNumber:    request.PhoneNumber,
		Role:           models.RoleUser,
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	// Welcome touches are best-effort; signup already succeeded.
	if err := s.notifier.Notify(user.ID, "Welcome to Lqitha! 🎉", "Post what you lost or found to start earning trust points", models.NotifSystem, ""); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"err":     err.Error(),
		}).Warn("welcome notification not delivered")
	}
	if s.mail != nil {
		if _, err := s.mail.SendWelcomeMessage(user.Email, "Welcome to Lqitha"); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": user.ID,
				"err":     err.Error(),
			}).Warn("welcome email not sent")
		}
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) LoginUser(request *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if err := user.VerifyPassword(request.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, s.Config.JWTSecret, user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error generating token pair: %w", err)
	}

	return &models.LoginResponse{
		UserResponse: models.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) CheckEmailExists(email string) (bool, error) {
	return s.authRepo.IsEmailExist(email)
}

func (s *authService) GetUserProfile(userID uint) (*models.UserResponse, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) GetUsername(userID uint) (string, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apiError.ErrNotFound
		}
		return "", fmt.Errorf("error fetching user: %w", err)
	}
	return user.Username, nil
}

func (s *authService) EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.UserResponse, error) {
	if request.Empty() {
		return nil, apiError.New("no fields to update", http.StatusBadRequest)
	}

	updates := map[string]interface{}{}
	if request.Username != nil {
		updates["username"] = *request.Username
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.PhoneNumber != nil {
		updates["phone_number"] = *request.PhoneNumber
	}
	if request.Photo != nil {
		updates["photo"] = *request.Photo
	}

	user, err := s.authRepo.EditUserProfile(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(userID uint, request *models.ChangePasswordRequest) error {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		return fmt.Errorf("error fetching user: %w", err)
	}

	if err := user.VerifyPassword(request.OldPassword); err != nil {
		return apiError.New("old password is incorrect", http.StatusUnauthorized)
	}
	if err := models.ValidatePassword(request.NewPassword); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.authRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

func (s *authService) UpdateFCMToken(userID uint, token string) error {
	if err := s.authRepo.UpdateFCMToken(userID, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		return fmt.Errorf("error updating fcm token: %w", err)
	}
	return nil
}

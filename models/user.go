package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a member of the lost-and-found community
type User struct {
	Model
	Username       string         `json:"username" binding:"required,min=2" conform:"trim"`
	Email          string         `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password       string         `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8"`
	HashedPassword string         `json:"-"`
	PhoneNumber    string         `json:"phone_number" gorm:"default:null" conform:"trim"`
	Photo          string         `json:"photo,omitempty"`
	Role           string         `json:"role" gorm:"default:user"`
	Points         int            `json:"points" gorm:"default:0"`
	FCMToken       string         `json:"-" gorm:"column:fcm_token"`
	Notifications  []Notification `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=2" conform:"trim"`
	Email       string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phone_number" conform:"trim"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type EditProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Photo       *string `json:"photo"`
}

// Empty reports whether the request carries no field to update.
func (r *EditProfileRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.PhoneNumber == nil && r.Photo == nil
}

type FCMTokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}

// UserResponse is the sanitized user view, the password hash never leaves the server
type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Photo       string `json:"photo,omitempty"`
	Role        string `json:"role"`
	Points      int    `json:"points"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
	Points   int    `json:"points"`
}

// NewUserResponse strips the credentials off a user record.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Photo:       u.Photo,
		Role:        u.Role,
		Points:      u.Points,
	}
}

// ValidatePassword enforces the password policy for signup and password change
func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(8, errors.New("password must be at least 8 characters long")),
		goval.MaxLength(72, errors.New("password cant be more than 72 characters")))
	return passwordValidator.Validate(password)
}

// NormalizeStrings trims and lowercases tagged fields in place
func NormalizeStrings(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

package db

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) (bool, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	EditUserProfile(userID uint, updates map[string]interface{}) (*models.User, error)
	UpdatePassword(userID uint, hashedPassword string) error
	UpdateFCMToken(userID uint, token string) error
	GetFCMToken(userID uint) (string, error)
	// IncrementPoints applies the delta atomically at the storage layer and
	// returns the resulting total. gorm.ErrRecordNotFound when the user is absent.
	IncrementPoints(userID uint, delta int) (int, error)
	GetLeaderboard(limit int) ([]models.LeaderboardEntry, error)
	CountUsers() (int64, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) (bool, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check email")
	}
	return count > 0, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	if err := a.DB.Where("email = ?", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	user := &models.User{}
	if err := a.DB.First(user, id).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) EditUserProfile(userID uint, updates map[string]interface{}) (*models.User, error) {
	res := a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "could not update user")
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return a.FindUserByID(userID)
}

func (a *authRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (a *authRepo) UpdateFCMToken(userID uint, token string) error {
	res := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", token)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not update fcm token")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) GetFCMToken(userID uint) (string, error) {
	var token string
	err := a.DB.Model(&models.User{}).Where("id = ?", userID).
		Pluck("fcm_token", &token).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

// IncrementPoints uses a single UPDATE so concurrent awards to the same user
// never lose an update.
func (a *authRepo) IncrementPoints(userID uint, delta int) (int, error) {
	res := a.DB.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "could not update points")
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var total int
	if err := a.DB.Model(&models.User{}).Where("id = ?", userID).
		Pluck("points", &total).Error; err != nil {
		return 0, fmt.Errorf("could not read points for user %d: %w", userID, err)
	}
	return total, nil
}

func (a *authRepo) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := a.DB.Model(&models.User{}).
		Select("id, username, photo, points").
		Order("points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load leaderboard")
	}
	return entries, nil
}

func (a *authRepo) CountUsers() (int64, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

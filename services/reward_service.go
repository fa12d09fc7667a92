package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/db"
	apiError "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
)

// AwardInput describes one point movement to record.
type AwardInput struct {
	UserID          uint
	Points          int
	TransactionType string
	Description     string
	RelatedPostID   string
	RelatedPostType string
}

type RewardService interface {
	// AwardPoints appends a ledger entry, notifies the user and applies the
	// delta to the denormalized total. It returns the new total. A missing
	// user fails with NotFound before any side effect; a ledger failure is
	// fatal; notification and push failures are logged and swallowed.
	AwardPoints(input AwardInput) (int, error)
	GetTransactions(userID uint, limit int) ([]models.TrustPointTransaction, error)
	GetLeaderboard(limit int) ([]models.LeaderboardEntry, error)
	// SumLedgerByUser recomputes the total from the ledger so operators can
	// reconcile it against users.points.
	SumLedgerByUser(userID uint) (int, error)
}

type rewardService struct {
	authRepo   db.AuthRepository
	ledgerRepo db.LedgerRepository
	notifier   NotificationService
	log        *logrus.Logger
}

func NewRewardService(authRepo db.AuthRepository, ledgerRepo db.LedgerRepository, notifier NotificationService, log *logrus.Logger) RewardService {
	return &rewardService{
		authRepo:   authRepo,
		ledgerRepo: ledgerRepo,
		notifier:   notifier,
		log:        log,
	}
}

func (s *rewardService) AwardPoints(in AwardInput) (int, error) {
	if _, err := s.authRepo.FindUserByID(in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apiError.ErrNotFound
		}
		return 0, fmt.Errorf("error fetching user: %w", err)
	}

	tx := &models.TrustPointTransaction{
		UserID:          in.UserID,
		Points:          in.Points,
		TransactionType: in.TransactionType,
		Description:     in.Description,
		RelatedPostID:   in.RelatedPostID,
		RelatedPostType: in.RelatedPostType,
	}
	if err := s.ledgerRepo.CreateTransaction(tx); err != nil {
		return 0, fmt.Errorf("error recording transaction: %w", err)
	}

	title := "Points Adjusted"
	if in.Points > 0 {
		title = "Trust Points!"
	}
	message := fmt.Sprintf("%s (%+d points)", in.Description, in.Points)
	if err := s.notifier.Notify(in.UserID, title, message, models.NotifPointChange, in.RelatedPostID); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": in.UserID,
			"post_id": in.RelatedPostID,
			"err":     err.Error(),
		}).Warn("points notification not delivered")
	}

	total, err := s.authRepo.IncrementPoints(in.UserID, in.Points)
	if err != nil {
		return 0, fmt.Errorf("error updating points total: %w", err)
	}
	return total, nil
}

func (s *rewardService) GetTransactions(userID uint, limit int) ([]models.TrustPointTransaction, error) {
	txs, err := s.ledgerRepo.ListTransactionsByUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}
	return txs, nil
}

func (s *rewardService) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.authRepo.GetLeaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("error getting leaderboard: %w", err)
	}
	return entries, nil
}

func (s *rewardService) SumLedgerByUser(userID uint) (int, error) {
	return s.ledgerRepo.SumPointsByUser(userID)
}

package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lqitha/lqitha-backend/models"
)

// LedgerRepository is append-only: transactions are never updated or deleted.
type LedgerRepository interface {
	CreateTransaction(tx *models.TrustPointTransaction) error
	ListTransactionsByUser(userID uint, limit int) ([]models.TrustPointTransaction, error)
	// SumPointsByUser totals the ledger deltas for reconciliation against the
	// denormalized users.points column.
	SumPointsByUser(userID uint) (int, error)
}

type ledgerRepo struct {
	DB *gorm.DB
}

func NewLedgerRepo(db *GormDB) LedgerRepository {
	return &ledgerRepo{db.DB}
}

func (r *ledgerRepo) CreateTransaction(tx *models.TrustPointTransaction) error {
	if err := r.DB.Create(tx).Error; err != nil {
		return errors.Wrap(err, "could not create trust point transaction")
	}
	return nil
}

func (r *ledgerRepo) ListTransactionsByUser(userID uint, limit int) ([]models.TrustPointTransaction, error) {
	var txs []models.TrustPointTransaction
	query := r.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&txs).Error; err != nil {
		return nil, errors.Wrap(err, "could not list transactions")
	}
	return txs, nil
}

func (r *ledgerRepo) SumPointsByUser(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&models.TrustPointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not sum ledger points")
	}
	return total, nil
}

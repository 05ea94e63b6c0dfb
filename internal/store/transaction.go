package store

import (
	"context"
	"fmt"

	"github.com/Lewin99/BuddyGet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 100

type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// SaveBatch inserts transactions, skipping any (user, transaction id) pair
// already stored. It returns the number of rows actually inserted.
func (s *TransactionStore) SaveBatch(ctx context.Context, txns []models.Transaction) (int64, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "transaction_id"}},
			DoNothing: true,
		}).
		CreateInBatches(&txns, insertBatchSize)
	if res.Error != nil {
		return res.RowsAffected, fmt.Errorf("save transactions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// List returns the owner's transactions, newest first.
func (s *TransactionStore) List(ctx context.Context, ownerID uint) ([]models.Transaction, error) {
	txns := make([]models.Transaction, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC, id DESC").
		Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

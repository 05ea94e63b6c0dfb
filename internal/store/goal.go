package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalInput is the payload for a new goal. CurrentAmount defaults to zero.
type GoalInput struct {
	Name          string           `json:"name"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Description   string           `json:"description"`
}

type GoalStore struct {
	db *gorm.DB
}

func NewGoalStore(db *gorm.DB) *GoalStore {
	return &GoalStore{db: db}
}

// Create stores a goal. The current <= target bound is only enforced by Update.
func (s *GoalStore) Create(ctx context.Context, ownerID uint, in GoalInput) (*models.Goal, error) {
	if err := util.ValidateName("name", in.Name, 128); err != nil {
		return nil, err
	}
	if err := util.ValidateAmount("targetAmount", in.TargetAmount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, util.Invalid("description", "is required")
	}

	current := decimal.Zero
	if in.CurrentAmount != nil {
		if err := util.ValidatePrecision("currentAmount", *in.CurrentAmount); err != nil {
			return nil, err
		}
		current = *in.CurrentAmount
	}

	g := models.Goal{
		UserID:        ownerID,
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  models.NewMoney(*in.TargetAmount),
		CurrentAmount: models.NewMoney(current),
		Description:   strings.TrimSpace(in.Description),
	}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &g, nil
}

// List returns the owner's goals in creation order.
func (s *GoalStore) List(ctx context.Context, ownerID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalStore) owned(db *gorm.DB, id, ownerID uint) (*models.Goal, error) {
	var g models.Goal
	if err := db.First(&g, id).Error; err != nil {
		return nil, notFound(err, "goal", id)
	}
	if err := checkOwner("goal", id, g.UserID, ownerID); err != nil {
		return nil, err
	}
	return &g, nil
}

// Update adds delta to the goal's current amount. The bound
// 0 <= current+delta <= target is part of the UPDATE's WHERE clause on the
// cent columns, so a rejected or racing update never leaves the goal past
// its target.
func (s *GoalStore) Update(ctx context.Context, id, ownerID uint, delta decimal.Decimal) (*models.Goal, error) {
	if err := util.ValidatePrecision("amount", delta); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if _, err := s.owned(db, id, ownerID); err != nil {
		return nil, err
	}

	cents := models.ToCents(delta)
	res := db.Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Where("current_amount + ? <= target_amount AND current_amount + ? >= 0", cents, cents).
		Update("current_amount", gorm.Expr("current_amount + ?", cents))
	if res.Error != nil {
		return nil, fmt.Errorf("update goal %d: %w", id, res.Error)
	}

	// reload: the goal may have been deleted or changed since the check above
	g, err := s.owned(db, id, ownerID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		if g.CurrentAmount.Add(delta).IsNegative() {
			return nil, util.Invalid("amount", "would bring the goal below zero")
		}
		return nil, util.Invalid("amount", "exceeds target amount")
	}
	return g, nil
}

// Delete removes a goal owned by ownerID.
func (s *GoalStore) Delete(ctx context.Context, id, ownerID uint) error {
	db := s.db.WithContext(ctx)
	if _, err := s.owned(db, id, ownerID); err != nil {
		return err
	}
	if err := db.Delete(&models.Goal{}, id).Error; err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return nil
}

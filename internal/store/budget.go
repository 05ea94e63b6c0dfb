package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemInput is one budget line as submitted by the client.
type ItemInput struct {
	Name            string           `json:"name"`
	AllocatedAmount *decimal.Decimal `json:"allocatedAmount"`
}

// BudgetInput carries the fields for create and full replacement.
// ActualSpending is only honoured by Replace.
type BudgetInput struct {
	Name           string           `json:"name"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	Items          []ItemInput      `json:"items"`
	ActualSpending *decimal.Decimal `json:"actualSpending"`
}

type budgetFields struct {
	name       string
	start, end time.Time
	items      []models.BudgetItem
}

func (in BudgetInput) validate() (*budgetFields, error) {
	if err := util.ValidateName("name", in.Name, 128); err != nil {
		return nil, err
	}
	start, err := util.ParseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := util.ParseDate("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, util.Invalid("endDate", "must not be before startDate")
	}
	if len(in.Items) == 0 {
		return nil, util.Invalid("items", "at least one item is required")
	}

	items := make([]models.BudgetItem, 0, len(in.Items))
	for i, it := range in.Items {
		if err := util.ValidateName(fmt.Sprintf("items[%d].name", i), it.Name, 128); err != nil {
			return nil, err
		}
		if err := util.ValidateAmount(fmt.Sprintf("items[%d].allocatedAmount", i), it.AllocatedAmount); err != nil {
			return nil, err
		}
		items = append(items, models.BudgetItem{
			Position:        i,
			Name:            strings.TrimSpace(it.Name),
			AllocatedAmount: models.NewMoney(*it.AllocatedAmount),
		})
	}

	return &budgetFields{
		name:  strings.TrimSpace(in.Name),
		start: start,
		end:   end,
		items: items,
	}, nil
}

type BudgetStore struct {
	db *gorm.DB
}

func NewBudgetStore(db *gorm.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create validates and stores a new budget with zero actual spending.
func (s *BudgetStore) Create(ctx context.Context, ownerID uint, in BudgetInput) (*models.Budget, error) {
	f, err := in.validate()
	if err != nil {
		return nil, err
	}

	b := models.Budget{
		UserID:         ownerID,
		Name:           f.name,
		StartDate:      f.start,
		EndDate:        f.end,
		ActualSpending: models.NewMoney(decimal.Zero),
		Items:          f.items,
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return &b, nil
}

// List returns the owner's budgets, newest first.
func (s *BudgetStore) List(ctx context.Context, ownerID uint) ([]models.Budget, error) {
	budgets := make([]models.Budget, 0)
	if err := s.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Get returns one budget with its items.
func (s *BudgetStore) Get(ctx context.Context, id, ownerID uint) (*models.Budget, error) {
	return s.owned(s.db.WithContext(ctx).Preload("Items", orderedItems), id, ownerID)
}

func (s *BudgetStore) owned(db *gorm.DB, id, ownerID uint) (*models.Budget, error) {
	var b models.Budget
	if err := db.First(&b, id).Error; err != nil {
		return nil, notFound(err, "budget", id)
	}
	if err := checkOwner("budget", id, b.UserID, ownerID); err != nil {
		return nil, err
	}
	return &b, nil
}

// Replace overwrites name, dates and items (and actual spending when given).
func (s *BudgetStore) Replace(ctx context.Context, id, ownerID uint, in BudgetInput) (*models.Budget, error) {
	f, err := in.validate()
	if err != nil {
		return nil, err
	}
	if in.ActualSpending != nil {
		if err := util.ValidatePrecision("actualSpending", *in.ActualSpending); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.owned(tx, id, ownerID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":       f.name,
			"start_date": f.start,
			"end_date":   f.end,
		}
		if in.ActualSpending != nil {
			updates["actual_spending"] = models.NewMoney(*in.ActualSpending)
		}
		if err := tx.Model(b).Updates(updates).Error; err != nil {
			return fmt.Errorf("update budget %d: %w", id, err)
		}

		if err := tx.Where("budget_id = ?", id).Delete(&models.BudgetItem{}).Error; err != nil {
			return fmt.Errorf("clear items of budget %d: %w", id, err)
		}
		for i := range f.items {
			f.items[i].BudgetID = id
		}
		if err := tx.Create(&f.items).Error; err != nil {
			return fmt.Errorf("store items of budget %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

// Delete removes the budget and its items.
func (s *BudgetStore) Delete(ctx context.Context, id, ownerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, id, ownerID); err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", id).Delete(&models.BudgetItem{}).Error; err != nil {
			return fmt.Errorf("delete items of budget %d: %w", id, err)
		}
		if err := tx.Delete(&models.Budget{}, id).Error; err != nil {
			return fmt.Errorf("delete budget %d: %w", id, err)
		}
		return nil
	})
}

// AdjustSpending adds delta (which may be negative) to the actual spending
// in a single UPDATE on the cent column, so concurrent adjustments never
// overwrite each other.
func (s *BudgetStore) AdjustSpending(ctx context.Context, id, ownerID uint, delta decimal.Decimal) (*models.Budget, error) {
	if err := util.ValidatePrecision("amount", delta); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if _, err := s.owned(db, id, ownerID); err != nil {
		return nil, err
	}

	res := db.Model(&models.Budget{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("actual_spending", gorm.Expr("actual_spending + ?", models.ToCents(delta)))
	if res.Error != nil {
		return nil, fmt.Errorf("adjust spending of budget %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("budget %d: %w", id, util.ErrNotFound)
	}
	return s.Get(ctx, id, ownerID)
}

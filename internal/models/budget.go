package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a named spending plan over a date range.
type Budget struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"index;not null" json:"userId"`
	Name           string       `gorm:"size:128;not null" json:"name"`
	StartDate      time.Time    `gorm:"not null" json:"startDate"`
	EndDate        time.Time    `gorm:"not null" json:"endDate"`
	ActualSpending Money        `gorm:"type:bigint;not null;default:0" json:"actualSpending"`
	Items          []BudgetItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// BudgetItem is one allocated line of a budget. Position keeps the order
// the items were submitted in.
type BudgetItem struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	BudgetID        uint   `gorm:"index;not null" json:"-"`
	Position        int    `gorm:"not null" json:"-"`
	Name            string `gorm:"size:128;not null" json:"name"`
	AllocatedAmount Money  `gorm:"type:bigint;not null" json:"allocatedAmount"`
}

// TotalAllocated sums the allocated amounts of all items.
func (b *Budget) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(it.AllocatedAmount.Decimal)
	}
	return total
}

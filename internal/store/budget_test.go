package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/shopspring/decimal"
)

func foodBudget() BudgetInput {
	return BudgetInput{
		Name:      "January",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Items:     []ItemInput{{Name: "Food", AllocatedAmount: dec("100")}},
	}
}

func TestBudgetCreate_Validation(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	tests := map[string]func(in *BudgetInput){
		"empty items":       func(in *BudgetInput) { in.Items = nil },
		"missing name":      func(in *BudgetInput) { in.Name = " " },
		"missing start":     func(in *BudgetInput) { in.StartDate = "" },
		"bad end":           func(in *BudgetInput) { in.EndDate = "31/01/2024" },
		"end before start":  func(in *BudgetInput) { in.EndDate = "2023-12-31" },
		"item without name": func(in *BudgetInput) { in.Items[0].Name = "" },
		"item without amount": func(in *BudgetInput) {
			in.Items[0].AllocatedAmount = nil
		},
		"item with zero amount": func(in *BudgetInput) {
			in.Items[0].AllocatedAmount = dec("0")
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := foodBudget()
			mutate(&in)
			_, err := s.Create(ctx, 1, in)
			if !errors.Is(err, util.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBudgetCreate_StartsWithZeroSpending(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, err := s.Create(ctx, 1, foodBudget())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.ID == 0 {
		t.Fatal("Create() returned budget without id")
	}

	got, err := s.Get(ctx, b.ID, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	assertDecimal(t, "ActualSpending", got.ActualSpending, "0")
	if len(got.Items) != 1 || got.Items[0].Name != "Food" {
		t.Fatalf("Items = %+v, want one Food item", got.Items)
	}
	assertDecimal(t, "AllocatedAmount", got.Items[0].AllocatedAmount, "100")
	if got.StartDate.Format("2006-01-02") != "2024-01-01" || got.EndDate.Format("2006-01-02") != "2024-01-31" {
		t.Errorf("dates = %v..%v", got.StartDate, got.EndDate)
	}
}

func TestBudgetAdjustSpending(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, _ := s.Create(ctx, 1, foodBudget())

	if _, err := s.AdjustSpending(ctx, b.ID, 1, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("AdjustSpending(50) error = %v", err)
	}
	got, err := s.AdjustSpending(ctx, b.ID, 1, decimal.NewFromInt(25))
	if err != nil {
		t.Fatalf("AdjustSpending(25) error = %v", err)
	}
	assertDecimal(t, "ActualSpending", got.ActualSpending, "75")

	// negative deltas are allowed and unbounded
	got, err = s.AdjustSpending(ctx, b.ID, 1, decimal.NewFromInt(-100))
	if err != nil {
		t.Fatalf("AdjustSpending(-100) error = %v", err)
	}
	assertDecimal(t, "ActualSpending", got.ActualSpending, "-25")
}

func TestBudgetAdjustSpending_CentAmounts(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, _ := s.Create(ctx, 1, foodBudget())

	if _, err := s.AdjustSpending(ctx, b.ID, 1, decimal.RequireFromString("0.1")); err != nil {
		t.Fatalf("AdjustSpending(0.1) error = %v", err)
	}
	got, err := s.AdjustSpending(ctx, b.ID, 1, decimal.RequireFromString("0.2"))
	if err != nil {
		t.Fatalf("AdjustSpending(0.2) error = %v", err)
	}
	assertDecimal(t, "ActualSpending", got.ActualSpending, "0.3")
	if got.ActualSpending.String() != "0.3" {
		t.Errorf("ActualSpending renders as %s, want 0.3", got.ActualSpending.String())
	}

	if _, err := s.AdjustSpending(ctx, b.ID, 1, decimal.RequireFromString("0.005")); !errors.Is(err, util.ErrValidation) {
		t.Errorf("AdjustSpending(sub-cent) error = %v, want ErrValidation", err)
	}
}

func TestBudgetAdjustSpending_Concurrent(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, _ := s.Create(ctx, 1, foodBudget())

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AdjustSpending(ctx, b.ID, 1, decimal.NewFromInt(5)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("AdjustSpending() error = %v", err)
	}

	got, _ := s.Get(ctx, b.ID, 1)
	assertDecimal(t, "ActualSpending", got.ActualSpending, "100")
}

func TestBudget_NotFoundAndForbidden(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, _ := s.Create(ctx, 1, foodBudget())

	if _, err := s.Get(ctx, 999, 1); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.AdjustSpending(ctx, 999, 1, decimal.NewFromInt(1)); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("AdjustSpending(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, 999, 1); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Replace(ctx, 999, 1, foodBudget()); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Replace(missing) error = %v, want ErrNotFound", err)
	}

	if _, err := s.Get(ctx, b.ID, 2); !errors.Is(err, util.ErrForbidden) {
		t.Errorf("Get(other owner) error = %v, want ErrForbidden", err)
	}
	if _, err := s.AdjustSpending(ctx, b.ID, 2, decimal.NewFromInt(1)); !errors.Is(err, util.ErrForbidden) {
		t.Errorf("AdjustSpending(other owner) error = %v, want ErrForbidden", err)
	}
	if _, err := s.Replace(ctx, b.ID, 2, foodBudget()); !errors.Is(err, util.ErrForbidden) {
		t.Errorf("Replace(other owner) error = %v, want ErrForbidden", err)
	}
	if err := s.Delete(ctx, b.ID, 2); !errors.Is(err, util.ErrForbidden) {
		t.Errorf("Delete(other owner) error = %v, want ErrForbidden", err)
	}

	got, _ := s.Get(ctx, b.ID, 1)
	assertDecimal(t, "ActualSpending", got.ActualSpending, "0")
}

func TestBudgetReplace(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	b, _ := s.Create(ctx, 1, foodBudget())
	_, _ = s.AdjustSpending(ctx, b.ID, 1, decimal.NewFromInt(40))

	in := BudgetInput{
		Name:      "February",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
		Items: []ItemInput{
			{Name: "Rent", AllocatedAmount: dec("900")},
			{Name: "Food", AllocatedAmount: dec("250.50")},
			{Name: "Fun", AllocatedAmount: dec("50")},
		},
	}
	got, err := s.Replace(ctx, b.ID, 1, in)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if got.Name != "February" {
		t.Errorf("Name = %q, want February", got.Name)
	}
	names := []string{}
	for _, it := range got.Items {
		names = append(names, it.Name)
	}
	if len(names) != 3 || names[0] != "Rent" || names[1] != "Food" || names[2] != "Fun" {
		t.Errorf("Items = %v, want [Rent Food Fun]", names)
	}
	assertDecimal(t, "TotalAllocated", got.TotalAllocated(), "1200.50")
	// spending untouched unless supplied
	assertDecimal(t, "ActualSpending", got.ActualSpending, "40")

	in.ActualSpending = dec("10")
	got, err = s.Replace(ctx, b.ID, 1, in)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	assertDecimal(t, "ActualSpending", got.ActualSpending, "10")

	var itemCount int64
	s.db.Model(&models.BudgetItem{}).Where("budget_id = ?", b.ID).Count(&itemCount)
	if itemCount != 3 {
		t.Errorf("stored items = %d, want 3", itemCount)
	}
}

func TestBudgetListAndDelete(t *testing.T) {
	s := NewBudgetStore(setupTestDB(t))
	ctx := context.Background()

	first, _ := s.Create(ctx, 1, foodBudget())
	_, _ = s.Create(ctx, 1, foodBudget())
	_, _ = s.Create(ctx, 2, foodBudget())

	list, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	for _, b := range list {
		if b.UserID != 1 || len(b.Items) != 1 {
			t.Errorf("List() returned %+v", b)
		}
	}

	if err := s.Delete(ctx, first.ID, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, first.ID, 1); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	var orphans int64
	s.db.Model(&models.BudgetItem{}).Where("budget_id = ?", first.ID).Count(&orphans)
	if orphans != 0 {
		t.Errorf("items left after delete = %d, want 0", orphans)
	}
}

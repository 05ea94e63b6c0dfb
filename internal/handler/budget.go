package handler

import (
	"github.com/Lewin99/BuddyGet/internal/store"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	Budgets *store.BudgetStore
}

func NewBudgetHandler(budgets *store.BudgetStore) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets}
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req store.BudgetInput
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Budgets.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		util.Fail(c, err, "failed to create budget")
		return
	}
	util.Success(c, util.Response{"budget": b})
}

func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	budgets, err := h.Budgets.List(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err, "failed to load budgets")
		return
	}
	util.Success(c, util.Response{"budgets": budgets})
}

func (h *BudgetHandler) GetBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.Budgets.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		util.Fail(c, err, "budget not available")
		return
	}
	util.Success(c, util.Response{"budget": b})
}

// UpdateBudget replaces the whole budget document.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req store.BudgetInput
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Budgets.Replace(c.Request.Context(), id, user.ID, req)
	if err != nil {
		util.Fail(c, err, "failed to update budget")
		return
	}
	util.Success(c, util.Response{"budget": b})
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Budgets.Delete(c.Request.Context(), id, user.ID); err != nil {
		util.Fail(c, err, "failed to delete budget")
		return
	}
	util.Success(c, util.Response{"message": "budget deleted"})
}

// UpdateActualSpending adds the signed amount to the budget's spending.
func (h *BudgetHandler) UpdateActualSpending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	delta, ok := bindAmount(c)
	if !ok {
		return
	}

	b, err := h.Budgets.AdjustSpending(c.Request.Context(), id, user.ID, delta)
	if err != nil {
		util.Fail(c, err, "failed to update spending")
		return
	}
	util.Success(c, util.Response{"budget": b})
}

// Package handler holds the gin handlers. Each handler binds its input,
// calls one store or service operation and writes the response envelope.
package handler

import (
	"net/http"
	"strconv"

	"github.com/Lewin99/BuddyGet/internal/middleware"
	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// amountReq is the body of the increment endpoints.
type amountReq struct {
	Amount *decimal.Decimal `json:"amount"`
}

// currentUser returns the authenticated user or writes 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	return user, true
}

// parseID reads the :id path parameter or writes 400.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body or writes 400.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return false
	}
	return true
}

// bindAmount reads the {"amount": delta} body or writes 400.
func bindAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req amountReq
	if !bindJSON(c, &req) {
		return decimal.Zero, false
	}
	if req.Amount == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount: is required")
		return decimal.Zero, false
	}
	return *req.Amount, true
}

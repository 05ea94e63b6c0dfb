package handler

import (
	"context"

	"github.com/Lewin99/BuddyGet/internal/importer"
	"github.com/Lewin99/BuddyGet/internal/store"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
)

// Importer runs a transaction import for one user.
type Importer interface {
	ImportForUser(ctx context.Context, ownerID uint) (*importer.Result, error)
}

type TransactionHandler struct {
	Importer     Importer
	Transactions *store.TransactionStore
}

func NewTransactionHandler(imp Importer, txns *store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Importer: imp, Transactions: txns}
}

// FetchAndSaveTransactions imports from the aggregator and answers with the
// records as the aggregator returned them.
func (h *TransactionHandler) FetchAndSaveTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	res, err := h.Importer.ImportForUser(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err, "failed to import transactions")
		return
	}

	util.Success(c, util.Response{
		"transactions": res.Transactions,
		"fetched":      res.Fetched,
		"imported":     res.Imported,
	})
}

// GetTransactions lists stored transactions, newest first.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	txns, err := h.Transactions.List(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err, "failed to load transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}

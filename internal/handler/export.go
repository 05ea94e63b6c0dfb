package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Date", "Name", "Merchant", "Amount", "Currency", "Category", "Pending", "Account", "Transaction ID"}

func exportRow(t models.Transaction) []string {
	currency := t.IsoCurrencyCode
	if currency == "" {
		currency = t.UnofficialCurrencyCode
	}
	return []string{
		t.Date.Format("2006-01-02"),
		t.Name,
		t.MerchantName,
		t.Amount.StringFixed(2),
		currency,
		strings.Join(t.Category, " > "),
		fmt.Sprintf("%t", t.Pending),
		t.AccountID,
		t.TransactionID,
	}
}

// ExportTransactions streams the caller's transactions as csv (default) or xlsx.
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format: must be csv or xlsx")
		return
	}

	txns, err := h.Transactions.List(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err, "failed to load transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), format)
	if format == "xlsx" {
		writeXLSX(c, filename, txns)
		return
	}
	writeCSV(c, filename, txns)
}

func writeCSV(c *gin.Context, filename string, txns []models.Transaction) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeaders)
	for _, t := range txns {
		_ = w.Write(exportRow(t))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = c.Error(err)
	}
}

func writeXLSX(c *gin.Context, filename string, txns []models.Transaction) {
	const sheet = "Transactions"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		util.Fail(c, err, "failed to build workbook")
		return
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, t := range txns {
		for col, v := range exportRow(t) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if col == 3 {
				amount, _ := t.Amount.Float64()
				_ = f.SetCellValue(sheet, cell, amount)
				continue
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 30)
	_ = f.SetColWidth(sheet, "D", "E", 12)
	_ = f.SetColWidth(sheet, "F", "F", 36)
	_ = f.SetColWidth(sheet, "H", "I", 28)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"cashflow/internal/models"
	"cashflow/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "Date", "Status", "Type", "Category", "Subcategory", "Amount", "Comment"}

func exportRow(e *models.Entry) []string {
	return []string{
		fmt.Sprint(e.ID),
		e.DateString(),
		string(e.Status),
		string(e.Type),
		e.Category,
		e.Subcategory,
		e.Amount.StringFixed(2),
		e.CommentText(),
	}
}

func attachment(c *gin.Context, contentType, ext string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%s.%s\"",
		time.Now().Format("20060102"), ext))
}

// ExportCSV streams every entry matching the query filters as CSV.
func (h *EntryHandler) ExportCSV(c *gin.Context) {
	f, err := bindFilter(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	attachment(c, "text/csv; charset=utf-8", "csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	_ = w.Write(exportHeaders)

	err = h.Store.Each(c.Request.Context(), f, func(e *models.Entry) error {
		return w.Write(exportRow(e))
	})
	if err != nil {
		// headers are gone already; the truncated file is all we can do
		_ = c.Error(err)
		h.Logger.ErrorContext(c.Request.Context(), "csv export failed", "error", err)
	}
}

// ExportXLSX writes every entry matching the query filters to a workbook.
func (h *EntryHandler) ExportXLSX(c *gin.Context) {
	f, err := bindFilter(c)
	if err != nil {
		util.ValidationFailed(c, err)
		return
	}

	book := excelize.NewFile()
	defer book.Close()

	const sheet = "Entries"
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		h.respondError(c, fmt.Errorf("name sheet: %w", err))
		return
	}

	for i, title := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = book.SetCellValue(sheet, cell, title)
	}

	row := 2
	err = h.Store.Each(c.Request.Context(), f, func(e *models.Entry) error {
		amount, _ := e.Amount.Float64()
		values := []any{e.ID, e.DateString(), string(e.Status), string(e.Type),
			e.Category, e.Subcategory, amount, e.CommentText()}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	_ = book.SetColWidth(sheet, "B", "B", 12)
	_ = book.SetColWidth(sheet, "E", "F", 18)
	_ = book.SetColWidth(sheet, "H", "H", 40)

	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	c.Status(http.StatusOK)
	if err := book.Write(c.Writer); err != nil {
		_ = c.Error(err)
		h.Logger.ErrorContext(c.Request.Context(), "xlsx export failed", "error", err)
	}
}

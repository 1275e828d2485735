package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/csvexport"
	"github.com/kdsprimark-ship-it/shipdesk/internal/report"
	"github.com/kdsprimark-ship-it/shipdesk/internal/stats"
)

// SheetHandler serves the filtered master data sheet and its exports.
type SheetHandler struct {
	stats *stats.Service
}

// NewSheetHandler creates a SheetHandler.
func NewSheetHandler(svc *stats.Service) *SheetHandler {
	return &SheetHandler{stats: svc}
}

func sheetFilter(c *gin.Context) stats.SheetFilter {
	return stats.SheetFilter{
		Search:  c.Query("search"),
		Date:    c.Query("date"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Shipper: c.Query("shipper"),
		Buyer:   c.Query("buyer"),
	}
}

// List returns sheet rows matching the query filters.
func (h *SheetHandler) List(c *gin.Context) {
	RespondOK(c, h.stats.Sheet(sheetFilter(c)))
}

// ExportCSV streams the filtered sheet as CSV with a UTF-8 BOM.
func (h *SheetHandler) ExportCSV(c *gin.Context) {
	entries := h.stats.Sheet(sheetFilter(c))

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteEntries(entries); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("master_sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX streams the filtered sheet as an XLSX workbook.
func (h *SheetHandler) ExportXLSX(c *gin.Context) {
	entries := h.stats.Sheet(sheetFilter(c))

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, entries); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.BuildFilename()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/repo"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// BillHandler creates bills from matched Indian entries. Plain bill CRUD
// lives on the generic collection routes; this handler owns the matching
// flow where the bill's totals are frozen.
type BillHandler struct {
	store *state.Store
	bills *repo.Repository[domain.BillInfo]
}

// NewBillHandler creates a BillHandler.
func NewBillHandler(store *state.Store, bills *repo.Repository[domain.BillInfo]) *BillHandler {
	return &BillHandler{store: store, bills: bills}
}

// CreateBillInput is the DTO for bill creation against an invoice.
type CreateBillInput struct {
	Date      string  `json:"date" binding:"required"`
	InvoiceNo string  `json:"invoiceNo" binding:"required"`
	PaidBill  float64 `json:"paidBill"`
}

// Preview matches an invoice number and returns the bill that would be
// created, without persisting anything.
func (h *BillHandler) Preview(c *gin.Context) {
	invoiceNo := c.Query("invoiceNo")
	if invoiceNo == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_QUERY", "invoiceNo is required")
		return
	}

	bill, err := domain.BuildBill(c.Query("date"), invoiceNo, 0, h.store.IndianEntries.Items())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Create matches the invoice, freezes the bill's totals, and inserts it.
func (h *BillHandler) Create(c *gin.Context) {
	var input CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	bill, err := domain.BuildBill(input.Date, input.InvoiceNo, input.PaidBill, h.store.IndianEntries.Items())
	if err != nil {
		HandleError(c, err)
		return
	}

	added, err := h.bills.Add(c.Request.Context(), bill)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, added)
}

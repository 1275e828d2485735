package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/handler"
	"github.com/kdsprimark-ship-it/shipdesk/internal/repo"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
	"github.com/kdsprimark-ship-it/shipdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var okResp = json.RawMessage(`{}`)

func perform(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error *handler.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}

func newCollectionRouter(t *testing.T) (*gin.Engine, *state.Store, *mocks.MockGateway) {
	t.Helper()
	store := state.NewStore()
	gw := new(mocks.MockGateway)

	entries := handler.NewCollectionHandler(repo.New(store.IndianEntries, gw, nil, zerolog.Nop())).
		WithPrepare(func(e *domain.IndianEntry) {
			e.TotalTaka = domain.ComputeTotalTaka(*e, store.PriceRates.Items(), nil)
		})
	entities := handler.NewCollectionHandler(repo.New(store.BusinessEntities, gw, nil, zerolog.Nop())).
		WithValidation(handler.ValidateBusinessEntity)
	rates := handler.NewCollectionHandler(repo.New(store.PriceRates, gw, nil, zerolog.Nop())).
		WithValidation(handler.ValidatePriceRate)

	r := gin.New()
	api := r.Group("/api/v1")
	entries.Register(api, "/entries")
	entities.Register(api, "/entities")
	rates.Register(api, "/price-rates")
	return r, store, gw
}

func TestCollectionHandler_CreateComputesTotal(t *testing.T) {
	r, store, gw := newCollectionRouter(t)
	gw.On("Request", mock.Anything, "addIndianEntry", mock.Anything).Return(okResp, nil)

	w := perform(r, http.MethodPost, "/api/v1/entries", domain.IndianEntry{
		Date: "2026-08-28", InvoiceNo: "INV-1", BuyerName: "ACME",
		Doc: 10, Ctn: 5, Ton: 2, TruckUnload: 1, Con: 50, Others: 20,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[domain.IndianEntry](t, w)
	// 10*485 + 5*3 + 2*249 + 1*150 + 50 + 20 = 5583
	assert.Equal(t, 5583.0, created.TotalTaka)
	assert.True(t, repo.IsTempID(created.ID))
	assert.Equal(t, 1, store.IndianEntries.Len())
}

func TestCollectionHandler_CreateUsesBuyerRateOverride(t *testing.T) {
	r, store, gw := newCollectionRouter(t)
	store.PriceRates.Insert(domain.PriceRate{ID: "p1", BuyerName: "ACME", Condition: domain.ConditionDoc, Rate: 500})
	gw.On("Request", mock.Anything, "addIndianEntry", mock.Anything).Return(okResp, nil)

	w := perform(r, http.MethodPost, "/api/v1/entries", domain.IndianEntry{
		InvoiceNo: "INV-2", BuyerName: "ACME", Doc: 10,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData[domain.IndianEntry](t, w)
	assert.Equal(t, 5000.0, created.TotalTaka)
}

func TestCollectionHandler_UpdateIsPartialPatch(t *testing.T) {
	r, store, gw := newCollectionRouter(t)
	store.ReplaceAll(domain.Snapshot{IndianEntries: []domain.IndianEntry{
		{ID: "a", Date: "2026-08-01", InvoiceNo: "INV-1", ShipperName: "Alpha", Doc: 1},
	}})
	gw.On("Request", mock.Anything, "updateIndianEntry", mock.Anything).Return(okResp, nil)

	w := perform(r, http.MethodPatch, "/api/v1/entries/a", map[string]any{"doc": 3})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeData[domain.IndianEntry](t, w)
	assert.Equal(t, 3.0, updated.Doc)
	// Omitted fields keep their stored values.
	assert.Equal(t, "Alpha", updated.ShipperName)
	assert.Equal(t, "INV-1", updated.InvoiceNo)
}

func TestCollectionHandler_UpdateUnknownID(t *testing.T) {
	r, _, _ := newCollectionRouter(t)
	w := perform(r, http.MethodPatch, "/api/v1/entries/missing", map[string]any{"doc": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestCollectionHandler_CreateRejectsBadEntityType(t *testing.T) {
	r, store, _ := newCollectionRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/entities", domain.BusinessEntity{Type: "WAREHOUSE", Name: "X"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ENTITY_TYPE", errorCode(t, w))
	assert.Equal(t, 0, store.BusinessEntities.Len())
}

func TestCollectionHandler_CreateRejectsBadCondition(t *testing.T) {
	r, _, _ := newCollectionRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/price-rates", domain.PriceRate{BuyerName: "ACME", Condition: "KG", Rate: 9})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CONDITION", errorCode(t, w))
}

func TestCollectionHandler_RemoteFailureReturns502(t *testing.T) {
	r, store, gw := newCollectionRouter(t)
	gw.On("Request", mock.Anything, "addIndianEntry", mock.Anything).
		Return(nil, domain.NewRemoteError("addIndianEntry", assert.AnError))

	w := perform(r, http.MethodPost, "/api/v1/entries", domain.IndianEntry{InvoiceNo: "INV-1"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "REMOTE_ERROR", errorCode(t, w))
	assert.Equal(t, 0, store.IndianEntries.Len())
}

func newBillRouter(t *testing.T) (*gin.Engine, *state.Store, *mocks.MockGateway) {
	t.Helper()
	store := state.NewStore()
	gw := new(mocks.MockGateway)
	billH := handler.NewBillHandler(store, repo.New(store.BillInfos, gw, nil, zerolog.Nop()))

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/billing/match", billH.Preview)
	api.POST("/billing/match", billH.Create)
	return r, store, gw
}

func TestBillHandler_CreateFreezesTotals(t *testing.T) {
	r, store, gw := newBillRouter(t)
	store.ReplaceAll(domain.Snapshot{IndianEntries: []domain.IndianEntry{
		{ID: "e1", InvoiceNo: "INV-77", ShipperName: "Alpha", Doc: 2, TotalTaka: 1000},
	}})
	gw.On("Request", mock.Anything, "addBillInfo", mock.Anything).Return(okResp, nil)

	// Invoice matching is case-insensitive.
	w := perform(r, http.MethodPost, "/api/v1/billing/match", handler.CreateBillInput{
		Date: "2026-08-28", InvoiceNo: "inv-77", PaidBill: 1500,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bill := decodeData[domain.BillInfo](t, w)
	assert.Equal(t, 1330.0, bill.TotalBill) // 1000 + 2*165
	assert.Equal(t, 0.0, bill.DueBill)
	assert.Equal(t, 170.0, bill.MiscApprovedBill)
	assert.Equal(t, "Alpha", bill.ShipperName)
	assert.Equal(t, 1, store.BillInfos.Len())
}

func TestBillHandler_CreateNoMatch(t *testing.T) {
	r, _, _ := newBillRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/billing/match", handler.CreateBillInput{
		Date: "2026-08-28", InvoiceNo: "INV-404", PaidBill: 100,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "NO_MATCHING_ENTRY", errorCode(t, w))
}

func TestBillHandler_Preview(t *testing.T) {
	r, store, _ := newBillRouter(t)
	store.ReplaceAll(domain.Snapshot{IndianEntries: []domain.IndianEntry{
		{ID: "e1", InvoiceNo: "INV-77", Doc: 1, TotalTaka: 500},
	}})

	w := perform(r, http.MethodGet, "/api/v1/billing/match?invoiceNo=INV-77", nil)

	require.Equal(t, http.StatusOK, w.Code)
	bill := decodeData[domain.BillInfo](t, w)
	assert.Equal(t, 665.0, bill.TotalBill)
	assert.Equal(t, 665.0, bill.DueBill)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrNoMatchingEntry, http.StatusUnprocessableEntity, "NO_MATCHING_ENTRY"},
		{domain.ErrBackupFormat, http.StatusBadRequest, "BACKUP_FORMAT"},
		{domain.NewRemoteError("readAll", assert.AnError), http.StatusBadGateway, "REMOTE_ERROR"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, code)
	}
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mazajretail/shishapos-backend/internal/catalog"
	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/ledger"
	"github.com/mazajretail/shishapos-backend/internal/notifications"
	"github.com/mazajretail/shishapos-backend/internal/partners"
	"github.com/mazajretail/shishapos-backend/internal/reports"
	"github.com/mazajretail/shishapos-backend/internal/sales"
	"github.com/mazajretail/shishapos-backend/internal/store/storetest"
	"github.com/mazajretail/shishapos-backend/pkg/config"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := storetest.New(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}

	inventoryService, err := inventory.NewService(st, logg, 0)
	require.NoError(t, err)
	catalogService, err := catalog.NewService(st, logg)
	require.NoError(t, err)
	salesService, err := sales.NewService(st, logg, nil)
	require.NoError(t, err)
	ledgerService, err := ledger.NewService(st, logg)
	require.NoError(t, err)
	partnersService, err := partners.NewService(st, logg)
	require.NoError(t, err)
	notificationsService, err := notifications.NewService(st, inventoryService, ledgerService, logg)
	require.NoError(t, err)
	reportsService, err := reports.NewService(st, inventoryService, logg)
	require.NoError(t, err)

	return NewRouter(cfg, logg, stubPinger{}, nil, Services{
		Inventory:     inventoryService,
		Catalog:       catalogService,
		Sales:         salesService,
		Ledger:        ledgerService,
		Partners:      partnersService,
		Notifications: notificationsService,
		Reports:       reportsService,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dev", rec.Header().Get("X-ShishaPOS-Env"))

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory", map[string]any{
		"name":           "Double Apple 250g",
		"barcode":        "6291100561012",
		"cartonCount":    2,
		"unitsPerCarton": 12,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryRejectsBadFraction(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/inventory", map[string]any{
		"name":           "Bad",
		"cartonFraction": 0.4,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"name":           "Mint 250g",
		"quantity":       10,
		"retailQuantity": 5,
		"wholesalePrice": "38.00",
		"retailPrice":    "50.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, "empty cart must be rejected")

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/lines", map[string]any{
		"productId": 1,
		"quantity":  2,
		"saleType":  "wholesale",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var journal struct {
		Data []struct {
			Total string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journal))
	require.Len(t, journal.Data, 1)
	require.True(t, decimal.RequireFromString(journal.Data[0].Total).Equal(decimal.NewFromInt(76)))
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

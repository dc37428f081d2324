package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellpanel/internal/config"
	"sellpanel/internal/engine"
	"sellpanel/internal/exchange"
	"sellpanel/internal/journal"
	"sellpanel/internal/logger"
	"sellpanel/internal/models"
)

type fakeExchange struct {
	placeErr error
	orderID  string
}

func (f *fakeExchange) GetOrderBook(ctx context.Context, size int) (models.OrderBook, error) {
	return models.OrderBook{QuoteCurrency: "KRW", TargetCurrency: "USDT"}, nil
}

func (f *fakeExchange) GetBalances(ctx context.Context) (map[string]models.Balance, error) {
	return map[string]models.Balance{
		"krw":  {Currency: "KRW", Available: 2000000},
		"usdt": {Currency: "USDT", Available: 1000},
	}, nil
}

func (f *fakeExchange) PlaceOrder(ctx context.Context, req exchange.OrderRequest) (exchange.PlacedOrder, error) {
	if f.placeErr != nil {
		return exchange.PlacedOrder{}, f.placeErr
	}
	return exchange.PlacedOrder{OrderID: f.orderID, Raw: json.RawMessage(`{"result":"success"}`)}, nil
}

func (f *fakeExchange) GetActiveOrders(ctx context.Context) ([]models.Order, error) {
	return []models.Order{
		{ID: "s1", Side: models.OrderSideSell},
		{ID: "b1", Side: models.OrderSideBuy},
	}, nil
}

func (f *fakeExchange) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return json.RawMessage(`{"result":"success"}`), nil
}

func (f *fakeExchange) GetOrderDetail(ctx context.Context, orderID string) (models.Order, error) {
	return models.Order{ID: orderID}, nil
}

func newTestServer(t *testing.T, client exchange.Client) *Server {
	t.Helper()

	cfg := &config.Config{
		Pair: config.PairConfig{
			QuoteCurrency:  "KRW",
			TargetCurrency: "USDT",
			MinNotional:    1000,
			MinQty:         0.001,
			QtyStep:        1,
		},
		Journal: config.JournalConfig{Path: filepath.Join(t.TempDir(), "order_log.json")},
		Runtime: config.RuntimeConfig{RefreshIntervalMs: 1},
	}

	log := logger.New(logger.Config{Level: "error"})
	eng := engine.New(cfg, client, journal.New(cfg.Journal.Path), log)
	return New(eng, log)
}

func TestPlaceOrderEndpointSuccess(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{orderID: "ord-1"})

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"side":"SELL","price":"1350","quantity":"500"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entry models.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, models.EntryStatusSuccess, entry.Status)
	assert.Equal(t, "ord-1", entry.OrderID)
}

func TestPlaceOrderEndpointInputError(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{orderID: "ord-1"})

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"side":"SELL","price":"0","quantity":"500"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var entry models.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, models.EntryStatusInputError, entry.Status)
	assert.NotEmpty(t, entry.ErrorMessage)
}

func TestPlaceOrderEndpointByPercentage(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{orderID: "ord-2"})

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"side":"SELL","price":"1350","percentage":50}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entry models.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "500", entry.Quantity)
}

func TestQuantityEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{})

	req := httptest.NewRequest(http.MethodPost, "/api/quantity",
		strings.NewReader(`{"side":"SELL","percentage":50,"price":"1350"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Quantity      string  `json:"quantity"`
		KRWEquivalent float64 `json:"krw_equivalent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "500", resp.Quantity)
	assert.Equal(t, 675000.0, resp.KRWEquivalent)
}

func TestActiveOrdersSellFilter(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/active?side=SELL", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "s1", orders[0].ID)
}

func TestOrderDetailEndpointMissingID(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/detail", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, engine.ErrOrderIDRequired.Error(), resp["error_message"])
}

func TestCancelOrderEndpointMissingID(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/cancel",
		strings.NewReader(`{"order_id":""}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeExchange{orderID: "ord-1"})

	place := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"side":"SELL","price":"1350","quantity":"500"}`))
	srv.Handler().ServeHTTP(httptest.NewRecorder(), place)

	req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryStatusSuccess, entries[0].Status)
}

package exchange

import (
	"context"
	"encoding/json"

	"sellpanel/internal/models"
)

type EventType string

const (
	EventTypeOrderBook EventType = "OrderBook"
	EventTypeTicker    EventType = "Ticker"
	EventTypeReconnect EventType = "Reconnect"
)

type Event struct {
	Type      EventType
	OrderBook *models.OrderBook
	Ticker    *models.Ticker
}

// PairRules — торговые ограничения пары. Для KRW/USDT это минимум
// 1000 KRW по стоимости заявки и 0.001 USDT по объёму.
type PairRules struct {
	QuoteCurrency  string
	TargetCurrency string
	MinNotional    float64
	MinQty         float64
	QtyStep        float64
}

type OrderRequest struct {
	Nonce string
	Side  models.OrderSide
	Type  models.OrderType
	Price float64
	Qty   float64
}

type PlacedOrder struct {
	OrderID string
	Raw     json.RawMessage
}

type Client interface {
	GetOrderBook(ctx context.Context, size int) (models.OrderBook, error)
	GetBalances(ctx context.Context) (map[string]models.Balance, error)
	PlaceOrder(ctx context.Context, req OrderRequest) (PlacedOrder, error)
	GetActiveOrders(ctx context.Context) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	GetOrderDetail(ctx context.Context, orderID string) (models.Order, error)
}

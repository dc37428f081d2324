package models

import (
	"encoding/json"
	"time"
)

type OrderSide string
type OrderType string
type EntryStatus string
type TrackStatus string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"

	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"

	EntryStatusInitiated       EntryStatus = "initiated"
	EntryStatusSuccess         EntryStatus = "success"
	EntryStatusAPIError        EntryStatus = "api_error"
	EntryStatusInputError      EntryStatus = "input_error"
	EntryStatusProcessingError EntryStatus = "processing_error"

	TrackStatusPending TrackStatus = "pending"
)

type Order struct {
	ID             string    `json:"order_id"`
	Side           OrderSide `json:"side"`
	Type           OrderType `json:"type"`
	QuoteCurrency  string    `json:"quote_currency"`
	TargetCurrency string    `json:"target_currency"`
	Price          float64   `json:"price"`
	OriginalQty    float64   `json:"original_qty"`
	ExecutedQty    float64   `json:"executed_qty"`
	RemainQty      float64   `json:"remain_qty"`
	Status         string    `json:"status"`
	OrderedAt      time.Time `json:"ordered_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Balance struct {
	Currency  string  `json:"currency"`
	Available float64 `json:"available"`
	Limit     float64 `json:"limit"`
	Total     float64 `json:"total"`
}

type OrderBookLevel struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

type OrderBook struct {
	QuoteCurrency  string           `json:"quote_currency"`
	TargetCurrency string           `json:"target_currency"`
	Bids           []OrderBookLevel `json:"bids"`
	Asks           []OrderBookLevel `json:"asks"`
	Timestamp      time.Time        `json:"timestamp"`
}

type Ticker struct {
	QuoteCurrency  string    `json:"quote_currency"`
	TargetCurrency string    `json:"target_currency"`
	Last           float64   `json:"last"`
	Timestamp      time.Time `json:"timestamp"`
}

// JournalEntry — одна запись журнала заявок. После записи в файл
// не изменяется, исправления оформляются новыми записями.
type JournalEntry struct {
	Timestamp    time.Time       `json:"timestamp"`
	UUID         string          `json:"uuid"`
	OrderType    OrderType       `json:"order_type"`
	Side         OrderSide       `json:"side"`
	Price        string          `json:"price"`
	Quantity     string          `json:"quantity"`
	Status       EntryStatus     `json:"status"`
	OrderID      string          `json:"order_id,omitempty"`
	Response     json.RawMessage `json:"response,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type TrackedOrder struct {
	OrderID  string      `json:"order_id"`
	Status   TrackStatus `json:"status"`
	Side     OrderSide   `json:"side"`
	Type     OrderType   `json:"type"`
	Price    string      `json:"price"`
	Quantity string      `json:"quantity"`
}

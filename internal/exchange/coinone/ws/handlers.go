package ws

import (
	"encoding/json"
	"strconv"
	"time"

	"sellpanel/internal/exchange"
	"sellpanel/internal/models"
)

func (w *Client) handleOrderBook(msg Message) {
	var data struct {
		QuoteCurrency  string `json:"quote_currency"`
		TargetCurrency string `json:"target_currency"`
		Timestamp      int64  `json:"timestamp"`
		Bids           []struct {
			Price string `json:"price"`
			Qty   string `json:"qty"`
		} `json:"bids"`
		Asks []struct {
			Price string `json:"price"`
			Qty   string `json:"qty"`
		} `json:"asks"`
	}

	if err := json.Unmarshal(msg.Data, &data); err != nil {
		w.logEntry().WithError(err).Warn("Не удалось разобрать ORDERBOOK.")
		return
	}

	book := models.OrderBook{
		QuoteCurrency:  data.QuoteCurrency,
		TargetCurrency: data.TargetCurrency,
		Timestamp:      time.UnixMilli(data.Timestamp),
	}
	for _, level := range data.Bids {
		price, _ := strconv.ParseFloat(level.Price, 64)
		qty, _ := strconv.ParseFloat(level.Qty, 64)
		book.Bids = append(book.Bids, models.OrderBookLevel{Price: price, Qty: qty})
	}
	for _, level := range data.Asks {
		price, _ := strconv.ParseFloat(level.Price, 64)
		qty, _ := strconv.ParseFloat(level.Qty, 64)
		book.Asks = append(book.Asks, models.OrderBookLevel{Price: price, Qty: qty})
	}

	w.events <- exchange.Event{
		Type:      exchange.EventTypeOrderBook,
		OrderBook: &book,
	}
}

func (w *Client) handleTicker(msg Message) {
	var data struct {
		QuoteCurrency  string `json:"quote_currency"`
		TargetCurrency string `json:"target_currency"`
		Timestamp      int64  `json:"timestamp"`
		Last           string `json:"last"`
	}

	if err := json.Unmarshal(msg.Data, &data); err != nil {
		w.logEntry().WithError(err).Warn("Не удалось разобрать TICKER.")
		return
	}

	last, _ := strconv.ParseFloat(data.Last, 64)

	w.events <- exchange.Event{
		Type: exchange.EventTypeTicker,
		Ticker: &models.Ticker{
			QuoteCurrency:  data.QuoteCurrency,
			TargetCurrency: data.TargetCurrency,
			Last:           last,
			Timestamp:      time.UnixMilli(data.Timestamp),
		},
	}
}

package coinone

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sellpanel/internal/models"
)

// GetOrderBook запрашивает публичный стакан пары, подпись не требуется.
func (c *Client) GetOrderBook(ctx context.Context, size int) (models.OrderBook, error) {
	if size <= 0 {
		size = 5
	}
	url := fmt.Sprintf("%s/public/v2/orderbook/%s/%s?size=%d", c.baseURL, c.quoteCurrency, c.targetCurrency, size)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("Не удалось создать запрос: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("Ошибка запроса: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("Не удалось прочитать ответ: %w", err)
	}

	var body struct {
		Result    string          `json:"result"`
		ErrorCode json.RawMessage `json:"error_code"`
		ErrorMsg  string          `json:"error_msg"`
		Timestamp int64           `json:"timestamp"`
		Bids      []struct {
			Price string `json:"price"`
			Qty   string `json:"qty"`
		} `json:"bids"`
		Asks []struct {
			Price string `json:"price"`
			Qty   string `json:"qty"`
		} `json:"asks"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return models.OrderBook{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if body.Result != "success" {
		return models.OrderBook{}, &APIError{
			Code:    rawString(body.ErrorCode, "unknown"),
			Message: firstNonEmpty(body.ErrorMsg, "Unknown error message"),
		}
	}

	book := models.OrderBook{
		QuoteCurrency:  c.quoteCurrency,
		TargetCurrency: c.targetCurrency,
		Timestamp:      time.UnixMilli(body.Timestamp),
	}
	for _, level := range body.Bids {
		price, _ := parseFloatOrZero(level.Price)
		qty, _ := parseFloatOrZero(level.Qty)
		book.Bids = append(book.Bids, models.OrderBookLevel{Price: price, Qty: qty})
	}
	for _, level := range body.Asks {
		price, _ := parseFloatOrZero(level.Price)
		qty, _ := parseFloatOrZero(level.Qty)
		book.Asks = append(book.Asks, models.OrderBookLevel{Price: price, Qty: qty})
	}
	return book, nil
}

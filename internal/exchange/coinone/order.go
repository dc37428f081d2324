package coinone

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"sellpanel/internal/exchange"
	"sellpanel/internal/models"
)

func (c *Client) PlaceOrder(ctx context.Context, req exchange.OrderRequest) (exchange.PlacedOrder, error) {
	payload := map[string]any{
		"nonce":           req.Nonce,
		"side":            string(req.Side),
		"quote_currency":  c.quoteCurrency,
		"target_currency": c.targetCurrency,
		"type":            string(req.Type),
		"price":           formatPrice(req.Price),
		"qty":             formatQty(req.Qty),
		"post_only":       false,
	}

	var resp struct {
		OrderID string `json:"order_id"`
	}

	raw, err := c.doRequest(ctx, "/v2.1/order", payload, &resp)
	if err != nil {
		return exchange.PlacedOrder{}, err
	}

	return exchange.PlacedOrder{
		OrderID: resp.OrderID,
		Raw:     raw,
	}, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	payload := map[string]any{
		"order_id":        orderID,
		"quote_currency":  c.quoteCurrency,
		"target_currency": c.targetCurrency,
	}

	return c.doRequest(ctx, "/v2.1/order/cancel", payload, nil)
}

type orderPayload struct {
	OrderID        string `json:"order_id"`
	Side           string `json:"side"`
	Type           string `json:"type"`
	QuoteCurrency  string `json:"quote_currency"`
	TargetCurrency string `json:"target_currency"`
	Price          string `json:"price"`
	OriginalQty    string `json:"original_qty"`
	ExecutedQty    string `json:"executed_qty"`
	RemainQty      string `json:"remain_qty"`
	Status         string `json:"status"`
	OrderedAt      int64  `json:"ordered_at"`
	UpdatedAt      int64  `json:"updated_at"`
}

func (c *Client) GetActiveOrders(ctx context.Context) ([]models.Order, error) {
	payload := map[string]any{
		"quote_currency":  c.quoteCurrency,
		"target_currency": c.targetCurrency,
	}

	var resp struct {
		ActiveOrders []orderPayload `json:"active_orders"`
	}

	if _, err := c.doRequest(ctx, "/v2.1/order/active_orders", payload, &resp); err != nil {
		return nil, err
	}

	var orders []models.Order
	for _, item := range resp.ActiveOrders {
		orders = append(orders, item.toOrder())
	}
	return orders, nil
}

func (c *Client) GetOrderDetail(ctx context.Context, orderID string) (models.Order, error) {
	payload := map[string]any{
		"order_id":        orderID,
		"quote_currency":  c.quoteCurrency,
		"target_currency": c.targetCurrency,
	}

	var resp struct {
		Order orderPayload `json:"order"`
	}

	if _, err := c.doRequest(ctx, "/v2.1/order/detail", payload, &resp); err != nil {
		return models.Order{}, err
	}

	return resp.Order.toOrder(), nil
}

func (p orderPayload) toOrder() models.Order {
	price, _ := strconv.ParseFloat(p.Price, 64)
	original, _ := parseFloatOrZero(p.OriginalQty)
	executed, _ := parseFloatOrZero(p.ExecutedQty)
	remain, _ := parseFloatOrZero(p.RemainQty)

	return models.Order{
		ID:             p.OrderID,
		Side:           models.OrderSide(p.Side),
		Type:           models.OrderType(p.Type),
		QuoteCurrency:  p.QuoteCurrency,
		TargetCurrency: p.TargetCurrency,
		Price:          price,
		OriginalQty:    original,
		ExecutedQty:    executed,
		RemainQty:      remain,
		Status:         p.Status,
		OrderedAt:      time.UnixMilli(p.OrderedAt),
		UpdatedAt:      time.UnixMilli(p.UpdatedAt),
	}
}

package engine

import (
	"context"
	"sync"
	"time"

	"sellpanel/internal/exchange"
	"sellpanel/internal/logger"
	"sellpanel/internal/models"
)

// MarketDataCache — одноразовый кэш рыночных данных панели: балансы,
// активные заявки и стакан обновляются целиком, без частичных апдейтов.
// Обновление срабатывает не чаще минимального интервала.
type MarketDataCache struct {
	client      exchange.Client
	log         *logger.Logger
	minInterval time.Duration

	mu           sync.Mutex
	balances     map[string]models.Balance
	activeOrders []models.Order
	orderBook    models.OrderBook
	lastTicker   models.Ticker
	lastUpdate   time.Time
}

func NewMarketDataCache(client exchange.Client, log *logger.Logger, minInterval time.Duration) *MarketDataCache {
	if minInterval <= 0 {
		minInterval = 500 * time.Millisecond
	}
	return &MarketDataCache{
		client:      client,
		log:         log,
		minInterval: minInterval,
		balances:    map[string]models.Balance{},
	}
}

// RefreshIfStale обновляет кэш целиком, если с прошлого обновления прошло
// не меньше минимального интервала. При ошибке отдельного запроса старые
// данные остаются на месте.
func (c *MarketDataCache) RefreshIfStale(ctx context.Context, now time.Time) bool {
	c.mu.Lock()
	if now.Sub(c.lastUpdate) < c.minInterval {
		c.mu.Unlock()
		return false
	}
	c.lastUpdate = now
	c.mu.Unlock()

	balances, err := c.client.GetBalances(ctx)
	if err != nil {
		c.log.WithComponent("cache").WithError(err).Warn("Не удалось обновить балансы.")
	}

	orders, ordersErr := c.client.GetActiveOrders(ctx)
	if ordersErr != nil {
		c.log.WithComponent("cache").WithError(ordersErr).Warn("Не удалось обновить активные заявки.")
	}

	book, bookErr := c.client.GetOrderBook(ctx, 5)
	if bookErr != nil {
		c.log.WithComponent("cache").WithError(bookErr).Warn("Не удалось обновить стакан.")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		c.balances = balances
	}
	if ordersErr == nil {
		c.activeOrders = orders
	}
	if bookErr == nil {
		c.orderBook = book
	}
	return true
}

// ApplyOrderBook принимает стакан из WS-потока, минуя интервал.
func (c *MarketDataCache) ApplyOrderBook(book models.OrderBook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orderBook = book
}

// ApplyTicker запоминает последнюю цену из WS-потока.
func (c *MarketDataCache) ApplyTicker(ticker models.Ticker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTicker = ticker
}

func (c *MarketDataCache) LastTicker() models.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTicker
}

func (c *MarketDataCache) Balances() map[string]models.Balance {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[string]models.Balance, len(c.balances))
	for currency, balance := range c.balances {
		snapshot[currency] = balance
	}
	return snapshot
}

func (c *MarketDataCache) ActiveOrders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]models.Order, len(c.activeOrders))
	copy(snapshot, c.activeOrders)
	return snapshot
}

// SellOrders — активные заявки на продажу: панель показывает только их.
func (c *MarketDataCache) SellOrders() []models.Order {
	var sells []models.Order
	for _, order := range c.ActiveOrders() {
		if order.Side == models.OrderSideSell {
			sells = append(sells, order)
		}
	}
	return sells
}

func (c *MarketDataCache) OrderBook() models.OrderBook {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderBook
}

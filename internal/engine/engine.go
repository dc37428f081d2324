package engine

import (
	"sync"
	"time"

	"sellpanel/internal/config"
	"sellpanel/internal/exchange"
	"sellpanel/internal/journal"
	"sellpanel/internal/logger"
	"sellpanel/internal/models"
)

type Engine struct {
	cfg     *config.Config
	client  exchange.Client
	journal *journal.Journal
	log     *logger.Logger
	rules   exchange.PairRules
	cache   *MarketDataCache

	mu       sync.Mutex
	tracking map[string]models.TrackedOrder
}

func New(cfg *config.Config, client exchange.Client, jr *journal.Journal, log *logger.Logger) *Engine {
	rules := exchange.PairRules{
		QuoteCurrency:  cfg.Pair.QuoteCurrency,
		TargetCurrency: cfg.Pair.TargetCurrency,
		MinNotional:    cfg.Pair.MinNotional,
		MinQty:         cfg.Pair.MinQty,
		QtyStep:        cfg.Pair.QtyStep,
	}

	return &Engine{
		cfg:      cfg,
		client:   client,
		journal:  jr,
		log:      log,
		rules:    rules,
		cache:    NewMarketDataCache(client, log, time.Duration(cfg.Runtime.RefreshIntervalMs)*time.Millisecond),
		tracking: map[string]models.TrackedOrder{},
	}
}

func (e *Engine) Rules() exchange.PairRules {
	return e.rules
}

func (e *Engine) Cache() *MarketDataCache {
	return e.cache
}

func (e *Engine) Journal() *journal.Journal {
	return e.journal
}

// TrackedOrders — снимок заявок, принятых биржей в этом процессе,
// по ключу nonce. Для сверки со списком активных заявок на панели.
func (e *Engine) TrackedOrders() map[string]models.TrackedOrder {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := make(map[string]models.TrackedOrder, len(e.tracking))
	for nonce, order := range e.tracking {
		snapshot[nonce] = order
	}
	return snapshot
}

func (e *Engine) trackOrder(nonce string, order models.TrackedOrder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracking[nonce] = order
}

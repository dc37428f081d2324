package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sellpanel/internal/exchange"
	"sellpanel/internal/logger"
)

type Client struct {
	url string
	log *logger.Logger

	// writeMu сериализует запись в сокет и публикацию conn после
	// переподключения: gorilla/websocket допускает одного пишущего.
	writeMu sync.Mutex
	conn    *websocket.Conn

	events         chan exchange.Event
	stopCh         chan struct{}
	stopOnce       sync.Once
	quoteCurrency  string
	targetCurrency string
	channels       []string
	reconnectMin   time.Duration
	reconnectMax   time.Duration
	pingInterval   time.Duration
}

type Topic struct {
	QuoteCurrency  string `json:"quote_currency"`
	TargetCurrency string `json:"target_currency"`
}

type RequestMessage struct {
	RequestType string `json:"request_type"`
	Channel     string `json:"channel,omitempty"`
	Topic       *Topic `json:"topic,omitempty"`
}

type Message struct {
	ResponseType string          `json:"response_type"`
	Channel      string          `json:"channel"`
	Data         json.RawMessage `json:"data"`
}

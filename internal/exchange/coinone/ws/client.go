package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"sellpanel/internal/exchange"
	"sellpanel/internal/logger"
)

func New(url string, log *logger.Logger) (*Client, error) {
	return &Client{
		url:          url,
		log:          log,
		events:       make(chan exchange.Event, 100),
		stopCh:       make(chan struct{}),
		reconnectMin: 1 * time.Second,
		reconnectMax: 30 * time.Second,
		pingInterval: 20 * time.Minute,
	}, nil
}

func (w *Client) Connect(ctx context.Context) error {
	w.logEntry().WithField("url", w.url).Info("Подключение к WS.")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("Не удалось подключиться к WS: %w", err)
	}

	conn.SetReadLimit(2 << 20)
	w.writeMu.Lock()
	w.conn = conn
	w.writeMu.Unlock()

	w.logEntry().Info("WS соединение установлено.")

	go w.readLoop()
	go w.pingLoop()

	return nil
}

func (w *Client) Close() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.writeMu.Lock()
		if w.conn != nil {
			_ = w.conn.Close()
		}
		w.writeMu.Unlock()
	})
}

// writeJSON — единственный путь записи в сокет.
func (w *Client) writeJSON(v any) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if w.conn == nil {
		return errors.New("Нет активного WS соединения")
	}
	return w.conn.WriteJSON(v)
}

func (w *Client) logEntry() *logrus.Entry {
	entry := w.log.WithComponent("coinone_ws")
	if w.targetCurrency != "" {
		entry = entry.WithField("pair", w.quoteCurrency+"/"+w.targetCurrency)
	}
	return entry
}

func (w *Client) Events() <-chan exchange.Event {
	return w.events
}

// pingLoop поддерживает соединение: биржа разрывает сокеты без трафика.
func (w *Client) pingLoop() {
	ticker := time.NewTicker(w.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if err := w.writeJSON(RequestMessage{RequestType: "PING"}); err != nil {
				w.logEntry().WithError(err).Warn("Не удалось отправить PING.")
			}
		}
	}
}

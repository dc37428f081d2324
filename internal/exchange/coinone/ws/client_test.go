package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"sellpanel/internal/logger"
)

func newStreamServer(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// В сокет пишут две горутины: pingLoop и подписки. Запись обязана быть
// сериализована, иначе gorilla/websocket падает с паникой
// "concurrent write to websocket connection".
func TestConcurrentWritersAreSerialized(t *testing.T) {
	srv := newStreamServer(t)

	log := logger.New(logger.Config{Level: "error"})
	client, err := New("ws"+strings.TrimPrefix(srv.URL, "http"), log)
	require.NoError(t, err)

	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = client.writeJSON(RequestMessage{RequestType: "PING"})
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = client.SubscribeToChannels(context.Background(), "KRW", "USDT", []string{"ORDERBOOK"})
		}
	}()

	wg.Wait()
}

func TestWriteWithoutConnection(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	client, err := New("ws://127.0.0.1:1", log)
	require.NoError(t, err)

	require.Error(t, client.writeJSON(RequestMessage{RequestType: "PING"}))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellpanel/internal/config"
	"sellpanel/internal/engine"
	"sellpanel/internal/exchange"
	"sellpanel/internal/exchange/coinone"
	"sellpanel/internal/exchange/coinone/ws"
	"sellpanel/internal/journal"
	"sellpanel/internal/logger"
	"sellpanel/internal/server"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logger.New(logger.Config{
		Level:      cfg.Runtime.Log.Level,
		Format:     cfg.Runtime.Log.Format,
		Output:     cfg.Runtime.Log.File,
		MaxSize:    cfg.Runtime.Log.MaxSize,
		MaxBackups: cfg.Runtime.Log.MaxBackups,
		MaxAge:     cfg.Runtime.Log.MaxAge,
		Compress:   cfg.Runtime.Log.Compress,
	})

	logger.Info("Панель запущена.")

	if cfg.Exchange.AccessToken == "" || cfg.Exchange.SecretKey == "" {
		logger.Fatal("Не заданы access_token и secret_key биржи.")
	}

	client := coinone.New(
		cfg.Exchange.BaseUrl,
		cfg.Exchange.AccessToken,
		cfg.Exchange.SecretKey,
		cfg.Pair.QuoteCurrency,
		cfg.Pair.TargetCurrency,
		time.Duration(cfg.Exchange.TimeoutSeconds)*time.Second,
		logger,
	)

	jr := journal.New(cfg.Journal.Path)
	eng := engine.New(cfg, client, jr, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := ws.New(cfg.Exchange.WSUrl, logger)
	if err != nil {
		logger.WithError(err).Fatal("Не удалось создать WS клиент.")
	}
	if err := stream.Connect(ctx); err != nil {
		logger.WithError(err).Warn("WS недоступен, остаётся опрос по REST.")
	} else {
		if err := stream.SubscribeToChannels(ctx, cfg.Pair.QuoteCurrency, cfg.Pair.TargetCurrency, []string{"ORDERBOOK", "TICKER"}); err != nil {
			logger.WithError(err).Warn("Не удалось подписаться на WS каналы.")
		}
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case event := <-stream.Events():
					switch {
					case event.Type == exchange.EventTypeOrderBook && event.OrderBook != nil:
						eng.Cache().ApplyOrderBook(*event.OrderBook)
					case event.Type == exchange.EventTypeTicker && event.Ticker != nil:
						eng.Cache().ApplyTicker(*event.Ticker)
					}
				}
			}
		}()
		defer stream.Close()
	}

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.New(eng, logger).Handler(),
	}

	go func() {
		logger.WithFields(map[string]interface{}{"addr": cfg.Server.ListenAddr}).Info("HTTP сервер слушает.")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP сервер завершился с ошибкой.")
		}
	}()

	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP сервер остановлен с ошибкой.")
	}

	cancel()

	logger.Info("Панель остановлена.")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/history"
	httpapi "github.com/radieske/analysis-relay/internal/relay/http"
	"github.com/radieske/analysis-relay/internal/relay/odds"
	"github.com/radieske/analysis-relay/internal/relay/publisher"
	"github.com/radieske/analysis-relay/internal/relay/telegram"
	"github.com/radieske/analysis-relay/internal/relay/ws"
	"github.com/radieske/analysis-relay/internal/shared/cache"
	"github.com/radieske/analysis-relay/internal/shared/config"
	"github.com/radieske/analysis-relay/internal/shared/logger"
	"github.com/radieske/analysis-relay/internal/shared/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
		zap.Bool("telegram_configured", cfg.TelegramConfigured()),
		zap.Bool("odds_configured", cfg.OddsConfigured()),
	)

	store := history.New(cfg.HistoryPath, cfg.HistoryMax, log)
	bot := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramChatID)

	// cache Redis das odds; opcional
	var gameCache odds.GameCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, odds cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			gameCache = odds.NewCache(redisClient, cfg.OddsCacheTTL)
			log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		}
	}
	oddsSvc := odds.NewService(odds.NewClient(cfg.OddsAPIURL, cfg.OddsAPIKey, cfg.OddsRegions), gameCache, log)

	// publisher Kafka; opcional
	var pub httpapi.Publisher
	if cfg.KafkaBrokers != "" {
		kp := publisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.TopicAnalysisPosted, log)
		defer kp.Close()
		pub = kp
		log.Info("kafka publisher ready", zap.String("topic", cfg.TopicAnalysisPosted))
	}

	hub := ws.NewHub(func(r *http.Request) bool { return true }, log)

	m := metrics.NewRelay(prometheus.DefaultRegisterer)

	srv := httpapi.NewServer(cfg, log, httpapi.Deps{
		Store:     store,
		Sender:    bot,
		Odds:      oddsSvc,
		Hub:       hub,
		Publisher: pub,
		Hooks: httpapi.Hooks{
			OnIngested:   m.OnIngested,
			OnNotify:     m.OnNotify,
			OnStoreError: m.OnStoreError,
			OnOddsFetch:  m.OnOddsFetch,
		},
	})

	// servidor de métricas e health; opcional
	var metricsSrv *http.Server
	if cfg.MetricsPort != "" {
		metricsSrv = metrics.StartMetricsServer(cfg.MetricsPort, prometheus.DefaultGatherer,
			func(ctx context.Context) error { return store.Check() }, log)
	}

	api := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("http listening", zap.String("addr", api.Addr))
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()

	if err := api.Shutdown(sctx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(sctx)
	}
	log.Info("relay stopped")
}

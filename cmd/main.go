package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/internal/adapters/ai"
	"github.com/selivandex/consensus-engine/internal/adapters/cache"
	"github.com/selivandex/consensus-engine/internal/adapters/config"
	"github.com/selivandex/consensus-engine/internal/adapters/news"
	"github.com/selivandex/consensus-engine/internal/adapters/price"
	"github.com/selivandex/consensus-engine/internal/adapters/telegram"
	"github.com/selivandex/consensus-engine/internal/adapters/validation"
	"github.com/selivandex/consensus-engine/internal/consensus"
	"github.com/selivandex/consensus-engine/internal/health"
	"github.com/selivandex/consensus-engine/internal/workers"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Consensus Resolution Engine starting...",
		zap.Strings("symbols", cfg.Engine.Symbols),
		zap.Duration("interval", cfg.Engine.ResolveInterval),
	)

	// Result cache: Redis when configured, in-process otherwise
	var resultCache cache.Cache
	var cachePinger health.Pinger

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		resultCache = redisCache
		cachePinger = redisCache
	} else {
		memCache := cache.NewMemoryCache(cfg.Engine.CacheTTL, cfg.Engine.CacheTTL)
		resultCache = memCache
		cachePinger = memCache
		logger.Info("redis disabled, using in-memory result cache")
	}

	// Upstream analyzers
	scout := ai.NewScoutClient(&cfg.AI)
	refiner := ai.NewRefinerClient(&cfg.AI)

	// Independent validation signal (optional)
	var validationSource validation.Source
	if cfg.Validation.URL != "" {
		validationSource = validation.NewHTTPSource(cfg.Validation.URL, cfg.Validation.Timeout)
	} else {
		logger.Info("validation source not configured, hybrid validation disabled")
	}

	engine, err := consensus.NewEngine(scout, refiner, validationSource, resultCache, &cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to create consensus engine: %w", err)
	}

	// Downstream alert sink (optional)
	var sink workers.ResultSink
	if cfg.Telegram.BotToken != "" {
		notifier, err := telegram.NewNotifier(&cfg.Telegram)
		if err != nil {
			return err
		}
		sink = notifier
	} else {
		logger.Info("telegram not configured, consensus alerts disabled")
	}

	consensusWorker := workers.NewConsensusWorker(
		engine,
		price.NewCoinGeckoProvider(),
		news.NewCoinDeskProvider(),
		sink,
		cfg.Engine.Symbols,
		cfg.Engine.MaxConcurrent,
	)

	group := worker.NewGroup(ctx)
	group.Add(consensusWorker, cfg.Engine.ResolveInterval)
	group.Start()

	healthServer := health.NewServer(cfg.Health.Port, cachePinger)
	healthServer.Start()
	healthServer.SetReady(true)

	logger.Info("✅ Consensus engine running")

	<-ctx.Done()

	logger.Info("🛑 Shutting down...")
	healthServer.SetReady(false)

	group.Stop(cfg.Engine.StopTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthServer.Stop(shutdownCtx); err != nil {
		logger.Warn("health server shutdown failed", zap.Error(err))
	}

	logger.Info("✅ Shutdown complete")
	return nil
}

package workers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/internal/adapters/news"
	"github.com/selivandex/consensus-engine/internal/adapters/price"
	"github.com/selivandex/consensus-engine/internal/consensus"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

// ResultSink consumes finished consensus results (alerting, statistics).
// Results are handed over as immutable values.
type ResultSink interface {
	SendConsensusAlert(result *models.ConsensusResult) error
}

// ConsensusWorker fans one engine run per configured symbol on every tick.
// Symbols run concurrently up to maxConcurrent; a single symbol's pipeline is
// sequential inside the engine.
type ConsensusWorker struct {
	engine    *consensus.Engine
	snapshots price.SnapshotProvider
	headlines news.Provider
	sink      ResultSink

	symbols       []string
	maxConcurrent int

	seq         uint64
	mu          sync.Mutex
	lastApplied map[string]uint64
}

// NewConsensusWorker creates new consensus worker. Snapshot and headline
// providers and the sink are optional.
func NewConsensusWorker(
	engine *consensus.Engine,
	snapshots price.SnapshotProvider,
	headlines news.Provider,
	sink ResultSink,
	symbols []string,
	maxConcurrent int,
) *ConsensusWorker {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ConsensusWorker{
		engine:        engine,
		snapshots:     snapshots,
		headlines:     headlines,
		sink:          sink,
		symbols:       symbols,
		maxConcurrent: maxConcurrent,
		lastApplied:   make(map[string]uint64),
	}
}

// Name returns worker name for logging
func (w *ConsensusWorker) Name() string {
	return "consensus_worker"
}

// Run executes one resolution round across all symbols
func (w *ConsensusWorker) Run(ctx context.Context) error {
	sem := make(chan struct{}, w.maxConcurrent)
	var wg sync.WaitGroup

	for _, symbol := range w.symbols {
		if ctx.Err() != nil {
			break
		}

		seq := atomic.AddUint64(&w.seq, 1)

		wg.Add(1)
		sem <- struct{}{}

		go func(symbol string, seq uint64) {
			defer wg.Done()
			defer func() { <-sem }()

			w.resolveSymbol(ctx, symbol, seq)
		}(symbol, seq)
	}

	wg.Wait()
	return ctx.Err()
}

// resolveSymbol runs the full pipeline for one symbol
func (w *ConsensusWorker) resolveSymbol(ctx context.Context, symbol string, seq uint64) {
	requestID := fmt.Sprintf("%s-%d", symbol, seq)

	var snapshot *models.MarketSnapshot
	if w.snapshots != nil {
		var err error
		snapshot, err = w.snapshots.Snapshot(ctx, symbol)
		if err != nil {
			// Best-effort input: the scout copes without a snapshot
			logger.Warn("snapshot unavailable",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	}

	var newsData *models.NewsData
	if w.headlines != nil {
		var err error
		newsData, err = w.headlines.FetchNews(ctx, symbol)
		if err != nil {
			logger.Warn("headlines unavailable",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	}

	result, err := w.engine.Run(ctx, symbol, requestID, snapshot, newsData)
	if err != nil {
		// Cancelled request: abandoned without a result
		logger.Debug("consensus request abandoned",
			zap.String("symbol", symbol),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return
	}

	if !w.apply(symbol, seq) {
		logger.Debug("discarding stale consensus result",
			zap.String("symbol", symbol),
			zap.String("request_id", requestID),
		)
		return
	}

	if w.sink != nil {
		if err := w.sink.SendConsensusAlert(result); err != nil {
			logger.Warn("failed to deliver consensus result",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	}
}

// apply enforces latest-wins per symbol: a result older than one already
// applied is discarded
func (w *ConsensusWorker) apply(symbol string, seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq < w.lastApplied[symbol] {
		return false
	}
	w.lastApplied[symbol] = seq
	return true
}

package consensus

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/internal/adapters/ai"
	"github.com/selivandex/consensus-engine/internal/adapters/cache"
	"github.com/selivandex/consensus-engine/internal/adapters/config"
	"github.com/selivandex/consensus-engine/internal/adapters/validation"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

const cachePurpose = "consensus"

// Engine runs the per-request consensus pipeline:
// SCOUT -> HANDOFF -> CROSS_REVIEW -> RESOLVE -> VALIDATE -> DONE.
// Safe for concurrent use across symbols; within one request the stages are
// strictly sequential.
type Engine struct {
	scout      ai.ScoutAnalyzer
	refiner    ai.RefinerAnalyzer
	validation validation.Source
	results    cache.Cache

	resolver *Resolver
	hybrid   *HybridValidator

	scoutTimeout   time.Duration
	refinerTimeout time.Duration
	baseConfidence float64
	cacheTTL       time.Duration

	now func() time.Time
}

// NewEngine creates new consensus engine. The validation source and result
// cache are optional; a nil cache disables the read-through stage and a nil
// validation source skips hybrid validation.
func NewEngine(
	scout ai.ScoutAnalyzer,
	refiner ai.RefinerAnalyzer,
	validationSource validation.Source,
	results cache.Cache,
	cfg *config.EngineConfig,
) (*Engine, error) {
	resolver, err := NewResolver()
	if err != nil {
		return nil, err
	}

	return &Engine{
		scout:          scout,
		refiner:        refiner,
		validation:     validationSource,
		results:        results,
		resolver:       resolver,
		hybrid:         NewHybridValidator(),
		scoutTimeout:   cfg.ScoutTimeout,
		refinerTimeout: cfg.RefinerTimeout,
		baseConfidence: cfg.BaseConfidence,
		cacheTTL:       cfg.CacheTTL,
		now:            time.Now,
	}, nil
}

// Run executes the full pipeline for one (symbol, requestID) invocation.
// It returns an error only when the caller's context is cancelled; every
// upstream failure degrades to the default HOLD result instead.
func (e *Engine) Run(ctx context.Context, symbol, requestID string, snapshot *models.MarketSnapshot, news *models.NewsData) (*models.ConsensusResult, error) {
	if cached, ok := e.cachedResult(ctx, symbol, requestID); ok {
		return cached, nil
	}

	// SCOUT
	scoutCtx, cancelScout := context.WithTimeout(ctx, e.scoutTimeout)
	scoutAnalysis, err := e.scout.Analyze(scoutCtx, symbol, snapshot, e.baseConfidence)
	cancelScout()
	if err != nil {
		return e.degrade(ctx, symbol, requestID, "scout analysis failed: "+err.Error())
	}

	// HANDOFF
	packet := BuildSocialPacket(scoutAnalysis, e.now())

	newsCtx, cancelNews := context.WithTimeout(ctx, e.refinerTimeout)
	newsAnalysis, err := e.refiner.AnalyzeNews(newsCtx, symbol, news)
	cancelNews()
	if err != nil {
		return e.degrade(ctx, symbol, requestID, "news analysis failed: "+err.Error())
	}

	socialCtx, cancelSocial := context.WithTimeout(ctx, e.refinerTimeout)
	refinerAnalysis, err := e.refiner.RefineSocial(socialCtx, symbol, packet)
	cancelSocial()
	if err != nil {
		return e.degrade(ctx, symbol, requestID, "social refinement failed: "+err.Error())
	}

	// CROSS_REVIEW + RESOLVE (pure computation, no suspension)
	result := e.resolver.Resolve(scoutAnalysis, newsAnalysis, refinerAnalysis, e.now())
	result.Symbol = symbol
	result.RequestID = requestID

	// VALIDATE: absence or failure of the validation signal is a no-op. A
	// degraded result is terminal and must not be revalidated.
	if e.validation != nil && !result.Degraded {
		sentiment, err := e.validation.GetSentiment(ctx, symbol)
		if err != nil {
			logger.Debug("validation source unavailable, skipping hybrid validation",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		} else {
			e.hybrid.Apply(result, sentiment)
		}
	}

	if ctx.Err() != nil {
		// Abandoned request: no partial result is observable
		return nil, ctx.Err()
	}

	e.storeResult(ctx, result)

	logger.Info("consensus pipeline done",
		zap.String("symbol", symbol),
		zap.String("request_id", requestID),
		zap.String("recommendation", string(result.FinalRecommendation)),
		zap.Float64("confidence", result.ConsensusConfidence),
		zap.String("agreement", string(result.AgreementLevel)),
		zap.Bool("hybrid_triggered", result.HybridValidationTriggered),
	)

	return result, nil
}

// degrade terminates the pipeline on the FAILED -> DEFAULT_HOLD edge. A
// cancelled caller gets no result at all; everything else gets the complete
// default HOLD.
func (e *Engine) degrade(ctx context.Context, symbol, requestID, reason string) (*models.ConsensusResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	logger.Warn("consensus degraded to default HOLD",
		zap.String("symbol", symbol),
		zap.String("request_id", requestID),
		zap.String("reason", reason),
	)

	result := DegradedResult(reason, e.now())
	result.Symbol = symbol
	result.RequestID = requestID
	return result, nil
}

// cachedResult consults the read-through cache before the SCOUT stage
func (e *Engine) cachedResult(ctx context.Context, symbol, requestID string) (*models.ConsensusResult, bool) {
	if e.results == nil {
		return nil, false
	}

	key := cache.Key(cachePurpose, symbol, cache.TimeBucket(e.now(), e.cacheTTL))
	data, ok := e.results.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var result models.ConsensusResult
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Warn("discarding malformed cached consensus",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}

	result.RequestID = requestID

	logger.Debug("consensus served from cache",
		zap.String("symbol", symbol),
		zap.String("key", key),
	)

	return &result, true
}

// storeResult publishes the result to the cache after the VALIDATE stage.
// Degraded results are not cached; a later request should retry upstream.
func (e *Engine) storeResult(ctx context.Context, result *models.ConsensusResult) {
	if e.results == nil || result.Degraded {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		logger.Warn("failed to marshal consensus for cache", zap.Error(err))
		return
	}

	key := cache.Key(cachePurpose, result.Symbol, cache.TimeBucket(e.now(), e.cacheTTL))
	e.results.Set(ctx, key, data, e.cacheTTL)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/selivandex/consensus-engine/internal/adapters/config"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

// ScoutClient calls the scout analyzer service over HTTP
type ScoutClient struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewScoutClient creates new scout analyzer client
func NewScoutClient(cfg *config.AIConfig) *ScoutClient {
	return &ScoutClient{
		url: cfg.ScoutURL,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}
}

// Analyze requests a technical analysis for the symbol. The caller's context
// deadline bounds the whole call, including the rate-limiter wait.
func (s *ScoutClient) Analyze(ctx context.Context, symbol string, snapshot *models.MarketSnapshot, baseConfidence float64) (*models.ScoutAnalysis, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := map[string]interface{}{
		"symbol":          symbol,
		"base_confidence": baseConfidence,
	}
	if snapshot != nil {
		reqBody["snapshot"] = snapshot
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("scout API error (status %d): %s", resp.StatusCode, string(body))
	}

	var analysis models.ScoutAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode scout response: %w", err)
	}

	if analysis.Symbol == "" {
		analysis.Symbol = symbol
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("scout analysis received",
		zap.String("symbol", symbol),
		zap.Duration("latency", time.Since(startTime)),
		zap.Float64("confidence", analysis.Confidence),
		zap.String("recommendation", string(analysis.Recommendation)),
	)

	return &analysis, nil
}

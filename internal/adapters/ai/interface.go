package ai

import (
	"context"

	"github.com/selivandex/consensus-engine/pkg/models"
)

// ScoutAnalyzer is the upstream technical/momentum analyzer. Calls must honor
// the caller-supplied deadline; the engine treats a timeout like any other
// upstream failure.
type ScoutAnalyzer interface {
	// Analyze produces a technical analysis with embedded social telemetry
	Analyze(ctx context.Context, symbol string, snapshot *models.MarketSnapshot, baseConfidence float64) (*models.ScoutAnalysis, error)
}

// RefinerAnalyzer is the upstream sentiment/narrative analyzer
type RefinerAnalyzer interface {
	// AnalyzeNews evaluates recent news for the symbol
	AnalyzeNews(ctx context.Context, symbol string, news *models.NewsData) (*models.NewsAnalysis, error)

	// RefineSocial refines the scout's social packet into a narrative analysis
	RefineSocial(ctx context.Context, symbol string, packet models.SocialDataPacket) (*models.RefinerAnalysis, error)
}

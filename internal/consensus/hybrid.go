package consensus

import (
	"math"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

const hybridRiskWarningSuffix = "Hybrid validation alert: independent signal diverges from consensus"

// HybridValidator cross-checks a resolved result against an independent,
// lower-trust validation signal. It can only lower confidence, never raise it.
type HybridValidator struct{}

// NewHybridValidator creates new hybrid validator
func NewHybridValidator() *HybridValidator {
	return &HybridValidator{}
}

// Apply compares the result's implied sentiment with the validation sentiment
// and applies a capped penalty when they diverge. The result is mutated in
// place; ownership has already transferred from the resolver.
func (hv *HybridValidator) Apply(result *models.ConsensusResult, validationSentiment float64) {
	consensusSentiment := (result.ConsensusConfidence - 50) / 50
	variance := math.Abs(consensusSentiment - clampSentiment(validationSentiment))

	if variance <= hybridVarianceThreshold {
		return
	}

	penalty := math.Min(hybridPenaltyCap, variance*hybridPenaltyRate)

	result.ConsensusConfidence = clampConfidence(result.ConsensusConfidence * (1 - penalty))
	result.ConfidenceAdjustment -= penalty
	result.HybridValidationTriggered = true

	if result.RiskWarning == "" {
		result.RiskWarning = hybridRiskWarningSuffix
	} else {
		result.RiskWarning += ". " + hybridRiskWarningSuffix
	}

	logger.Debug("hybrid validation triggered",
		zap.String("symbol", result.Symbol),
		zap.Float64("variance", variance),
		zap.Float64("penalty", penalty),
		zap.Float64("confidence", result.ConsensusConfidence),
	)
}

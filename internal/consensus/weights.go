package consensus

import (
	"fmt"
	"math"
)

// Component weights for the consensus base score. Technical analysis carries
// the most weight, social sentiment second, fundamental news last. They must
// sum to 1.0; validateWeights enforces this at construction time.
const (
	WeightTechnical   = 0.45
	WeightSentiment   = 0.35
	WeightFundamental = 0.20
)

// Agreement classification thresholds and their confidence adjustments
const (
	strongAgreementMaxDiff  = 20.0
	partialAgreementMaxDiff = 50.0

	strongAgreementBoost      = 0.12
	strongDisagreementPenalty = -0.15
)

// Cross-review thresholds and deltas
const (
	correlationHighThreshold = 0.8
	correlationLowThreshold  = 0.3
	correlationBonus         = 0.03
	correlationPenalty       = -0.02

	consistencyHighThreshold = 0.8
	consistencyLowThreshold  = 0.3
	consistencyBonus         = 0.02
	consistencyPenalty       = -0.01

	bridgeThreshold = 0.5
	bridgeBonus     = 0.05
)

// Recommendation scoring constants
const (
	scoutScoreWeight     = 0.6
	sentimentScoreWeight = 0.4

	sentimentSignalThreshold = 0.2
	recommendationThreshold  = 0.3
)

// Hybrid validation constants
const (
	hybridVarianceThreshold = 0.2
	hybridPenaltyRate       = 0.3
	hybridPenaltyCap        = 0.15
)

// Degraded-path and narrative constants
const (
	degradedConfidence = 50.0
	reasoningMaxLen    = 500
)

// validateWeights guards against configuration drift in the component weights.
// Failing this check is fatal at startup, never at request time.
func validateWeights() error {
	sum := WeightTechnical + WeightSentiment + WeightFundamental
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("consensus weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// clampConfidence keeps a confidence value inside [0,100]
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

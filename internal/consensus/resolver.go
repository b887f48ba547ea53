package consensus

import (
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

const (
	degradedRiskWarning     = "Consensus degraded: upstream analysis unavailable, defaulting to HOLD"
	disagreementRiskWarning = "Technical and sentiment analyses strongly diverge; holding"
)

// reviewer produces the cross-review deltas consumed by the resolver
type reviewer interface {
	Review(scout *models.ScoutAnalysis, news *models.NewsAnalysis, refiner *models.RefinerAnalysis) CrossReviewAdjustments
}

// Resolver combines the weighted component scores, the agreement tier
// adjustment and the cross-review deltas into a final recommendation.
type Resolver struct {
	reviewer reviewer
}

// NewResolver creates new resolver. Fails fast if the component weights are
// misconfigured.
func NewResolver() (*Resolver, error) {
	if err := validateWeights(); err != nil {
		return nil, err
	}
	return &Resolver{reviewer: NewCrossReviewer()}, nil
}

// Resolve reconciles the three upstream analyses into one ConsensusResult.
// Any missing or invalid analysis short-circuits to the degraded default;
// this function never fails.
func (r *Resolver) Resolve(scout *models.ScoutAnalysis, news *models.NewsAnalysis, refiner *models.RefinerAnalysis, now time.Time) *models.ConsensusResult {
	if err := scout.Validate(); err != nil {
		return DegradedResult(err.Error(), now)
	}
	if err := news.Validate(); err != nil {
		return DegradedResult(err.Error(), now)
	}
	if err := refiner.Validate(); err != nil {
		return DegradedResult(err.Error(), now)
	}

	refinerEquivalent := refiner.ConfidenceEquivalent()
	agreement, agreementAdjustment := ClassifyAgreement(scout.Confidence, refinerEquivalent)

	base := scout.Confidence*WeightTechnical +
		refinerEquivalent*WeightSentiment +
		news.Confidence*WeightFundamental

	totalAdjustment := agreementAdjustment + r.reviewer.Review(scout, news, refiner).Total()

	confidence := clampConfidence(base * (1 + totalAdjustment))

	recommendation := resolveRecommendation(agreement, scout, news, refiner)

	riskWarning := scout.RiskWarning
	if agreement == models.StrongDisagreement && riskWarning == "" {
		riskWarning = disagreementRiskWarning
	}

	logger.Debug("consensus resolved",
		zap.String("symbol", scout.Symbol),
		zap.Float64("base", base),
		zap.Float64("adjustment", totalAdjustment),
		zap.Float64("confidence", confidence),
		zap.String("agreement", string(agreement)),
		zap.String("recommendation", string(recommendation)),
	)

	return &models.ConsensusResult{
		Symbol:               scout.Symbol,
		FinalRecommendation:  recommendation,
		ConsensusConfidence:  confidence,
		AgreementLevel:       agreement,
		ScoutScore:           scout.Confidence,
		RefinerScore:         refinerEquivalent,
		ConfidenceAdjustment: totalAdjustment,
		Reasoning:            CombineReasoning(scout, news, refiner),
		RiskWarning:          riskWarning,
		SocialNewsBridge:     refiner.SocialNewsBridge,
		CreatedAt:            now,
	}
}

// resolveRecommendation derives the final direction. Strong disagreement is a
// hard safety rule: it forces HOLD no matter what the components say.
func resolveRecommendation(agreement models.AgreementLevel, scout *models.ScoutAnalysis, news *models.NewsAnalysis, refiner *models.RefinerAnalysis) models.Recommendation {
	if agreement == models.StrongDisagreement {
		return models.RecommendationHold
	}

	avgSentiment := (news.Sentiment + refiner.Sentiment) / 2

	var sentimentScore float64
	switch {
	case avgSentiment > sentimentSignalThreshold:
		sentimentScore = 1
	case avgSentiment < -sentimentSignalThreshold:
		sentimentScore = -1
	}

	finalScore := scout.Recommendation.SignedScore()*scoutScoreWeight + sentimentScore*sentimentScoreWeight

	switch {
	case finalScore > recommendationThreshold:
		return models.RecommendationBuy
	case finalScore < -recommendationThreshold:
		return models.RecommendationSell
	default:
		return models.RecommendationHold
	}
}

// DegradedResult builds the terminal default result used whenever an upstream
// analysis is absent or unparseable. This is the sole error-recovery path of
// the resolve stage.
func DegradedResult(reason string, now time.Time) *models.ConsensusResult {
	return &models.ConsensusResult{
		FinalRecommendation: models.RecommendationHold,
		ConsensusConfidence: degradedConfidence,
		AgreementLevel:      models.StrongDisagreement,
		Reasoning:           degradedRiskWarning,
		RiskWarning:         degradedRiskWarning,
		Degraded:            true,
		DegradedReason:      reason,
		CreatedAt:           now,
	}
}

package consensus

import (
	"math"

	"github.com/selivandex/consensus-engine/pkg/models"
)

// CrossReviewAdjustments holds the three independent corrective deltas the
// cross review produces. Recomputed per request, never persisted.
type CrossReviewAdjustments struct {
	Correlation          float64
	NarrativeConsistency float64
	BridgeBonus          float64
}

// Total sums the deltas into the adjustment applied by the resolver
func (a CrossReviewAdjustments) Total() float64 {
	return a.Correlation + a.NarrativeConsistency + a.BridgeBonus
}

// CrossReviewer compares the two analyses against each other and produces
// small corrective adjustments. Each sub-check is side-effect free and
// degrades to a zero delta when its inputs are missing.
type CrossReviewer struct{}

// NewCrossReviewer creates new cross reviewer
func NewCrossReviewer() *CrossReviewer {
	return &CrossReviewer{}
}

// Review computes all three deltas. A nil analysis disables only the checks
// that depend on it.
func (cr *CrossReviewer) Review(scout *models.ScoutAnalysis, news *models.NewsAnalysis, refiner *models.RefinerAnalysis) CrossReviewAdjustments {
	var adj CrossReviewAdjustments

	if scout != nil && refiner != nil {
		adj.Correlation = cr.correlationDelta(scout.Confidence, refiner.Sentiment)
	}
	if news != nil && refiner != nil {
		adj.NarrativeConsistency = cr.consistencyDelta(news.Sentiment, refiner.Sentiment)
	}
	if refiner != nil {
		adj.BridgeBonus = cr.bridgeDelta(refiner.SocialNewsBridge)
	}

	return adj
}

// correlationDelta checks whether technical momentum and social sentiment
// point the same way. Scout confidence is remapped to a pseudo-sentiment on
// [-1,1] before comparison.
func (cr *CrossReviewer) correlationDelta(scoutConfidence, refinerSentiment float64) float64 {
	pseudoSentiment := (scoutConfidence - 50) / 50
	correlation := 1 - math.Abs(pseudoSentiment-refinerSentiment)/2

	switch {
	case correlation > correlationHighThreshold:
		return correlationBonus
	case correlation < correlationLowThreshold:
		return correlationPenalty
	default:
		return 0
	}
}

// consistencyDelta checks whether the news read and the social narrative agree
func (cr *CrossReviewer) consistencyDelta(newsSentiment, refinerSentiment float64) float64 {
	consistency := 1 - math.Abs(newsSentiment-refinerSentiment)/2

	switch {
	case consistency > consistencyHighThreshold:
		return consistencyBonus
	case consistency < consistencyLowThreshold:
		return consistencyPenalty
	default:
		return 0
	}
}

// bridgeDelta rewards a strong social-news bridge signal in either direction
func (cr *CrossReviewer) bridgeDelta(bridge float64) float64 {
	if math.Abs(bridge) > bridgeThreshold {
		return bridgeBonus
	}
	return 0
}

package models

// Recommendation represents a trading recommendation
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationSell Recommendation = "SELL"
	RecommendationHold Recommendation = "HOLD"
)

// SignedScore maps a recommendation to its directional score
func (r Recommendation) SignedScore() float64 {
	switch r {
	case RecommendationBuy:
		return 1.0
	case RecommendationSell:
		return -1.0
	default:
		return 0.0
	}
}

// IsValid reports whether the recommendation is a known value
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationBuy, RecommendationSell, RecommendationHold:
		return true
	}
	return false
}

// AgreementLevel classifies how closely the scout and refiner confidences align
type AgreementLevel string

const (
	StrongAgreement    AgreementLevel = "STRONG_AGREEMENT"
	PartialAgreement   AgreementLevel = "PARTIAL_AGREEMENT"
	StrongDisagreement AgreementLevel = "STRONG_DISAGREEMENT"
)

// NewsImpact represents estimated market impact of news
type NewsImpact string

const (
	ImpactHigh   NewsImpact = "HIGH"
	ImpactMedium NewsImpact = "MEDIUM"
	ImpactLow    NewsImpact = "LOW"
)

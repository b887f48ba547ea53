package consensus

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/selivandex/consensus-engine/pkg/models"
)

// zeroReviewer disables cross-review deltas so tests can isolate the
// weighted-base arithmetic
type zeroReviewer struct{}

func (zeroReviewer) Review(*models.ScoutAnalysis, *models.NewsAnalysis, *models.RefinerAnalysis) CrossReviewAdjustments {
	return CrossReviewAdjustments{}
}

func validScout(confidence float64, rec models.Recommendation) *models.ScoutAnalysis {
	return &models.ScoutAnalysis{
		Symbol:         "BTC/USDT",
		Confidence:     confidence,
		Recommendation: rec,
		Reasoning:      "momentum breakout above resistance",
	}
}

func validNews(sentiment, confidence float64) *models.NewsAnalysis {
	return &models.NewsAnalysis{
		Sentiment:  sentiment,
		Confidence: confidence,
		Impact:     models.ImpactMedium,
	}
}

func validRefiner(sentiment float64) *models.RefinerAnalysis {
	return &models.RefinerAnalysis{
		Sentiment:  sentiment,
		Confidence: 60,
		Narrative:  "crowd cautiously optimistic",
	}
}

func TestNewResolver_WeightsValidated(t *testing.T) {
	if _, err := NewResolver(); err != nil {
		t.Fatalf("Expected weights to validate, got %v", err)
	}
}

func TestResolver_Resolve_StrongAgreementBuy(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}
	resolver.reviewer = zeroReviewer{}

	// scout 80 BUY, refiner sentiment 0.5 -> equivalent 75, news 0.4/70
	result := resolver.Resolve(
		validScout(80, models.RecommendationBuy),
		validNews(0.4, 70),
		validRefiner(0.5),
		time.Unix(1700000000, 0),
	)

	if result.Degraded {
		t.Fatalf("Unexpected degraded result: %s", result.DegradedReason)
	}
	if result.AgreementLevel != models.StrongAgreement {
		t.Errorf("Expected STRONG_AGREEMENT, got %s", result.AgreementLevel)
	}
	// base = 80*0.45 + 75*0.35 + 70*0.20 = 76.25; boosted by 1.12 -> 85.4
	if math.Abs(result.ConsensusConfidence-85.4) > 1e-9 {
		t.Errorf("Expected confidence 85.4, got %.6f", result.ConsensusConfidence)
	}
	if result.FinalRecommendation != models.RecommendationBuy {
		t.Errorf("Expected BUY, got %s", result.FinalRecommendation)
	}
	if result.ScoutScore != 80 {
		t.Errorf("Expected scout score 80, got %.2f", result.ScoutScore)
	}
	if result.RefinerScore != 75 {
		t.Errorf("Expected refiner score 75, got %.2f", result.RefinerScore)
	}
}

func TestResolver_Resolve_StrongDisagreementForcesHold(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}
	resolver.reviewer = zeroReviewer{}

	// Same bullish scout, but refiner sentiment -0.8 -> equivalent 10, diff 70
	result := resolver.Resolve(
		validScout(80, models.RecommendationBuy),
		validNews(0.4, 70),
		validRefiner(-0.8),
		time.Unix(1700000000, 0),
	)

	if result.AgreementLevel != models.StrongDisagreement {
		t.Fatalf("Expected STRONG_DISAGREEMENT, got %s", result.AgreementLevel)
	}
	if result.FinalRecommendation != models.RecommendationHold {
		t.Errorf("Expected forced HOLD, got %s", result.FinalRecommendation)
	}
	if result.RiskWarning == "" {
		t.Error("Expected a risk warning on forced HOLD")
	}
}

func TestResolver_Resolve_DisagreementHoldProperty(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	recommendations := []models.Recommendation{models.RecommendationBuy, models.RecommendationSell}

	for i := 0; i < 500; i++ {
		scoutConfidence := 60 + rng.Float64()*40 // 60..100
		// Refiner sentiment low enough that the equivalent stays >50 away
		refinerSentiment := -1 + rng.Float64()*0.15 // equivalent 0..7.5
		rec := recommendations[rng.Intn(len(recommendations))]

		result := resolver.Resolve(
			validScout(scoutConfidence, rec),
			validNews(rng.Float64()*2-1, rng.Float64()*100),
			validRefiner(refinerSentiment),
			time.Unix(1700000000, 0),
		)

		if result.AgreementLevel != models.StrongDisagreement {
			t.Fatalf("iteration %d: expected STRONG_DISAGREEMENT (scout=%.2f refiner=%.2f)",
				i, scoutConfidence, refinerSentiment)
		}
		if result.FinalRecommendation != models.RecommendationHold {
			t.Fatalf("iteration %d: disagreement must force HOLD, got %s", i, result.FinalRecommendation)
		}
	}
}

func TestResolver_Resolve_ConfidenceAlwaysInRange(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(7))
	recommendations := []models.Recommendation{
		models.RecommendationBuy, models.RecommendationSell, models.RecommendationHold,
	}

	for i := 0; i < 1000; i++ {
		result := resolver.Resolve(
			validScout(rng.Float64()*100, recommendations[rng.Intn(len(recommendations))]),
			validNews(rng.Float64()*2-1, rng.Float64()*100),
			validRefiner(rng.Float64()*2-1),
			time.Unix(1700000000, 0),
		)

		if result.ConsensusConfidence < 0 || result.ConsensusConfidence > 100 {
			t.Fatalf("iteration %d: confidence %.4f escaped [0,100]", i, result.ConsensusConfidence)
		}
	}
}

func TestResolver_Resolve_DegradedDefaults(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		scout   *models.ScoutAnalysis
		news    *models.NewsAnalysis
		refiner *models.RefinerAnalysis
	}{
		{
			name:    "missing scout",
			scout:   nil,
			news:    validNews(0.2, 60),
			refiner: validRefiner(0.1),
		},
		{
			name:    "missing news",
			scout:   validScout(70, models.RecommendationBuy),
			news:    nil,
			refiner: validRefiner(0.1),
		},
		{
			name:    "missing refiner",
			scout:   validScout(70, models.RecommendationBuy),
			news:    validNews(0.2, 60),
			refiner: nil,
		},
		{
			name:    "out of range scout confidence",
			scout:   &models.ScoutAnalysis{Symbol: "BTC/USDT", Confidence: 140, Recommendation: models.RecommendationBuy, Reasoning: "x"},
			news:    validNews(0.2, 60),
			refiner: validRefiner(0.1),
		},
		{
			name:    "unknown recommendation",
			scout:   &models.ScoutAnalysis{Symbol: "BTC/USDT", Confidence: 70, Recommendation: "MOON", Reasoning: "x"},
			news:    validNews(0.2, 60),
			refiner: validRefiner(0.1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolver.Resolve(tt.scout, tt.news, tt.refiner, time.Unix(1700000000, 0))

			if !result.Degraded {
				t.Fatal("Expected degraded result")
			}
			if result.FinalRecommendation != models.RecommendationHold {
				t.Errorf("Expected HOLD, got %s", result.FinalRecommendation)
			}
			if result.ConsensusConfidence != 50 {
				t.Errorf("Expected confidence 50, got %.2f", result.ConsensusConfidence)
			}
			if result.AgreementLevel != models.StrongDisagreement {
				t.Errorf("Expected STRONG_DISAGREEMENT, got %s", result.AgreementLevel)
			}
			if result.RiskWarning == "" {
				t.Error("Expected generic risk warning")
			}
			if result.DegradedReason == "" {
				t.Error("Expected degraded reason")
			}
		})
	}
}

func TestResolver_Resolve_RecommendationTieBreaks(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}
	resolver.reviewer = zeroReviewer{}

	tests := []struct {
		name             string
		scoutRec         models.Recommendation
		newsSentiment    float64
		refinerSentiment float64
		want             models.Recommendation
	}{
		{
			// scout +1*0.6, sentiment 0 -> 0.6 > 0.3
			name:             "bullish scout with neutral sentiment buys",
			scoutRec:         models.RecommendationBuy,
			newsSentiment:    0.1,
			refinerSentiment: 0.1,
			want:             models.RecommendationBuy,
		},
		{
			// scout 0, sentiment -1*0.4 = -0.4 < -0.3
			name:             "neutral scout with bearish sentiment sells",
			scoutRec:         models.RecommendationHold,
			newsSentiment:    -0.6,
			refinerSentiment: -0.4,
			want:             models.RecommendationSell,
		},
		{
			// scout -1*0.6, sentiment +1*0.4 -> -0.2 inside the dead band
			name:             "conflicting signals hold",
			scoutRec:         models.RecommendationSell,
			newsSentiment:    0.6,
			refinerSentiment: 0.4,
			want:             models.RecommendationHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep scout and refiner close enough to avoid forced HOLD
			refinerEquivalent := (tt.refinerSentiment + 1) * 50
			result := resolver.Resolve(
				validScout(refinerEquivalent, tt.scoutRec),
				validNews(tt.newsSentiment, 60),
				validRefiner(tt.refinerSentiment),
				time.Unix(1700000000, 0),
			)

			if result.AgreementLevel == models.StrongDisagreement {
				t.Fatal("Test setup error: unintended disagreement")
			}
			if result.FinalRecommendation != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, result.FinalRecommendation)
			}
		})
	}
}

func TestResolver_Resolve_ReasoningBounded(t *testing.T) {
	resolver, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}

	scout := validScout(70, models.RecommendationBuy)
	scout.Reasoning = strings.Repeat("breakout ", 200)

	news := validNews(0.3, 60)
	news.KeyEvents = []string{strings.Repeat("etf inflows ", 50), strings.Repeat("halving ", 50)}

	refiner := validRefiner(0.3)
	refiner.Narrative = strings.Repeat("the crowd is euphoric ", 100)

	result := resolver.Resolve(scout, news, refiner, time.Unix(1700000000, 0))

	if got := len([]rune(result.Reasoning)); got > 500 {
		t.Errorf("Expected reasoning capped at 500 chars, got %d", got)
	}
	if !strings.HasPrefix(result.Reasoning, "Technical: ") {
		t.Errorf("Expected technical summary first, got %q", result.Reasoning[:40])
	}
}

package consensus

import (
	"strings"
	"testing"

	"github.com/selivandex/consensus-engine/pkg/models"
)

func TestCombineReasoning_FixedOrder(t *testing.T) {
	scout := &models.ScoutAnalysis{Reasoning: "RSI oversold, MACD crossing up"}
	news := &models.NewsAnalysis{Sentiment: 0.4, Impact: models.ImpactHigh, KeyEvents: []string{"ETF approval"}}
	refiner := &models.RefinerAnalysis{Narrative: "retail crowd turning bullish"}

	got := CombineReasoning(scout, news, refiner)

	techIdx := strings.Index(got, "Technical:")
	newsIdx := strings.Index(got, "News:")
	narrativeIdx := strings.Index(got, "Narrative:")

	if techIdx != 0 {
		t.Errorf("Expected technical summary first, got %q", got)
	}
	if newsIdx < techIdx || narrativeIdx < newsIdx {
		t.Errorf("Expected fixed order technical/news/narrative, got %q", got)
	}
	if !strings.Contains(got, "HIGH impact") {
		t.Errorf("Expected news impact in summary, got %q", got)
	}
	if !strings.Contains(got, "ETF approval") {
		t.Errorf("Expected key events in summary, got %q", got)
	}
}

func TestCombineReasoning_LengthBound(t *testing.T) {
	tests := []struct {
		name      string
		technical string
		narrative string
	}{
		{"empty inputs", "", ""},
		{"short inputs", "up", "calm"},
		{"long technical", strings.Repeat("volume spike ", 100), "calm"},
		{"long narrative", "up", strings.Repeat("euphoria everywhere ", 100)},
		{"everything long", strings.Repeat("x", 2000), strings.Repeat("y", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scout := &models.ScoutAnalysis{Reasoning: tt.technical}
			news := &models.NewsAnalysis{Sentiment: -0.2, Impact: models.ImpactLow}
			refiner := &models.RefinerAnalysis{Narrative: tt.narrative}

			got := CombineReasoning(scout, news, refiner)

			if length := len([]rune(got)); length > 500 {
				t.Errorf("Expected <=500 chars, got %d", length)
			}
		})
	}
}

func TestCombineReasoning_Deterministic(t *testing.T) {
	scout := &models.ScoutAnalysis{Reasoning: "ascending triangle forming"}
	news := &models.NewsAnalysis{Sentiment: 0.15, Impact: models.ImpactMedium, EarningsProximity: true}
	refiner := &models.RefinerAnalysis{Narrative: "mixed chatter"}

	first := CombineReasoning(scout, news, refiner)
	second := CombineReasoning(scout, news, refiner)

	if first != second {
		t.Errorf("Expected identical output, got %q vs %q", first, second)
	}
	if !strings.Contains(first, "earnings window") {
		t.Errorf("Expected earnings note, got %q", first)
	}
}

func TestCombineReasoning_MissingStages(t *testing.T) {
	got := CombineReasoning(nil, nil, &models.RefinerAnalysis{Narrative: "quiet day"})

	if got != "Narrative: quiet day" {
		t.Errorf("Expected narrative only, got %q", got)
	}

	if got := CombineReasoning(nil, nil, nil); got != "" {
		t.Errorf("Expected empty reasoning, got %q", got)
	}
}

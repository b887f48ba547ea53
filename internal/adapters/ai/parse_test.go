package ai

import (
	"testing"

	"github.com/selivandex/consensus-engine/pkg/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare json",
			text: `{"sentiment": 0.5}`,
			want: `{"sentiment": 0.5}`,
		},
		{
			name: "markdown code block",
			text: "Here you go:\n```json\n{\"sentiment\": 0.5}\n```",
			want: `{"sentiment": 0.5}`,
		},
		{
			name: "code block without language tag",
			text: "```\n{\"sentiment\": 0.5}\n```",
			want: `{"sentiment": 0.5}`,
		},
		{
			name: "json surrounded by prose",
			text: `The analysis: {"sentiment": 0.5} as requested.`,
			want: `{"sentiment": 0.5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.text); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseNewsAnalysis(t *testing.T) {
	content := `{
		"sentiment": 0.4,
		"confidence": 70,
		"impact": "high",
		"key_events": ["ETF approval"],
		"earnings_proximity": true
	}`

	analysis, err := parseNewsAnalysis(content)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if analysis.Sentiment != 0.4 {
		t.Errorf("Expected sentiment 0.4, got %.2f", analysis.Sentiment)
	}
	if analysis.Impact != models.ImpactHigh {
		t.Errorf("Expected HIGH impact (case-normalized), got %s", analysis.Impact)
	}
	if !analysis.EarningsProximity {
		t.Error("Expected earnings proximity flag")
	}
}

func TestParseNewsAnalysis_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "I cannot analyze this right now",
		},
		{
			name:    "sentiment out of range",
			content: `{"sentiment": 4.2, "confidence": 70, "impact": "HIGH"}`,
		},
		{
			name:    "unknown impact",
			content: `{"sentiment": 0.1, "confidence": 70, "impact": "EXTREME"}`,
		},
		{
			name:    "confidence out of range",
			content: `{"sentiment": 0.1, "confidence": 170, "impact": "LOW"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseNewsAnalysis(tt.content); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestParseRefinerAnalysis(t *testing.T) {
	content := "```json\n" + `{
		"sentiment": -0.3,
		"confidence": 55,
		"narrative": "sarcastic pessimism dominates",
		"key_themes": ["regulation", "liquidations"],
		"crowd_psychology": "anxiety",
		"sarcasm_detected": true,
		"social_news_bridge": 0.7
	}` + "\n```"

	analysis, err := parseRefinerAnalysis(content)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if analysis.Sentiment != -0.3 {
		t.Errorf("Expected sentiment -0.3, got %.2f", analysis.Sentiment)
	}
	if !analysis.SarcasmDetected {
		t.Error("Expected sarcasm flag")
	}
	if analysis.SocialNewsBridge != 0.7 {
		t.Errorf("Expected bridge 0.7, got %.2f", analysis.SocialNewsBridge)
	}
	if len(analysis.KeyThemes) != 2 {
		t.Errorf("Expected 2 themes, got %d", len(analysis.KeyThemes))
	}
}

func TestParseRefinerAnalysis_BridgeOutOfRange(t *testing.T) {
	content := `{"sentiment": 0.1, "confidence": 55, "social_news_bridge": 2.5}`

	if _, err := parseRefinerAnalysis(content); err == nil {
		t.Error("Expected validation error for out-of-range bridge")
	}
}

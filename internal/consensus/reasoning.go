package consensus

import (
	"fmt"
	"strings"

	"github.com/selivandex/consensus-engine/pkg/models"
)

const technicalSummaryLen = 200

// CombineReasoning merges the per-stage explanations into one narrative in a
// fixed order: technical summary, news impact, social narrative. The combined
// text never exceeds reasoningMaxLen characters. Deterministic for identical
// inputs.
func CombineReasoning(scout *models.ScoutAnalysis, news *models.NewsAnalysis, refiner *models.RefinerAnalysis) string {
	parts := make([]string, 0, 3)

	if scout != nil && scout.Reasoning != "" {
		parts = append(parts, "Technical: "+truncate(scout.Reasoning, technicalSummaryLen))
	}
	if news != nil {
		parts = append(parts, newsSummary(news))
	}
	if refiner != nil && refiner.Narrative != "" {
		parts = append(parts, "Narrative: "+refiner.Narrative)
	}

	return truncate(strings.Join(parts, " | "), reasoningMaxLen)
}

// newsSummary renders a compact news-impact summary
func newsSummary(news *models.NewsAnalysis) string {
	summary := fmt.Sprintf("News: %s impact, sentiment %.2f", news.Impact, news.Sentiment)
	if news.EarningsProximity {
		summary += ", earnings window"
	}
	if len(news.KeyEvents) > 0 {
		summary += " (" + strings.Join(news.KeyEvents, "; ") + ")"
	}
	return summary
}

// truncate cuts s to at most limit characters, rune-safe
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

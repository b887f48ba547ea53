package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/selivandex/consensus-engine/pkg/models"
)

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSON pulls a JSON object out of a model response that may wrap it in
// markdown or prose
func extractJSON(text string) string {
	if matches := codeBlockRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(text[start : end+1])
	}

	return strings.TrimSpace(text)
}

// parseNewsAnalysis parses and validates a news evaluation response
func parseNewsAnalysis(content string) (*models.NewsAnalysis, error) {
	jsonStr := extractJSON(content)

	var response struct {
		Sentiment         float64  `json:"sentiment"`
		Confidence        float64  `json:"confidence"`
		Impact            string   `json:"impact"`
		KeyEvents         []string `json:"key_events"`
		EarningsProximity bool     `json:"earnings_proximity"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news analysis: %w (content: %s)", err, jsonStr)
	}

	analysis := &models.NewsAnalysis{
		Sentiment:         response.Sentiment,
		Confidence:        response.Confidence,
		Impact:            models.NewsImpact(strings.ToUpper(response.Impact)),
		KeyEvents:         response.KeyEvents,
		EarningsProximity: response.EarningsProximity,
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	return analysis, nil
}

// parseRefinerAnalysis parses and validates a social refinement response
func parseRefinerAnalysis(content string) (*models.RefinerAnalysis, error) {
	jsonStr := extractJSON(content)

	var response struct {
		Sentiment        float64  `json:"sentiment"`
		Confidence       float64  `json:"confidence"`
		Narrative        string   `json:"narrative"`
		KeyThemes        []string `json:"key_themes"`
		CrowdPsychology  string   `json:"crowd_psychology"`
		SarcasmDetected  bool     `json:"sarcasm_detected"`
		SocialNewsBridge float64  `json:"social_news_bridge"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refiner analysis: %w (content: %s)", err, jsonStr)
	}

	analysis := &models.RefinerAnalysis{
		Sentiment:        response.Sentiment,
		Confidence:       response.Confidence,
		Narrative:        response.Narrative,
		KeyThemes:        response.KeyThemes,
		CrowdPsychology:  response.CrowdPsychology,
		SarcasmDetected:  response.SarcasmDetected,
		SocialNewsBridge: response.SocialNewsBridge,
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	return analysis, nil
}

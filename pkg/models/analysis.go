package models

import "time"

// SocialTelemetry is raw social chatter captured by the scout alongside its analysis
type SocialTelemetry struct {
	RawSentiment float64        `json:"raw_sentiment" validate:"gte=-1,lte=1"`
	MentionCount int            `json:"mention_count" validate:"gte=0"`
	Themes       []string       `json:"themes"`
	Sources      map[string]int `json:"sources"`
	Confidence   float64        `json:"confidence" validate:"gte=0,lte=100"`
}

// ScoutAnalysis is the technical/momentum analysis produced by the scout analyzer.
// Immutable after creation.
type ScoutAnalysis struct {
	Symbol         string          `json:"symbol" validate:"required"`
	Confidence     float64         `json:"confidence" validate:"gte=0,lte=100"`
	Recommendation Recommendation  `json:"recommendation" validate:"required,oneof=BUY SELL HOLD"`
	Reasoning      string          `json:"reasoning" validate:"required"`
	RiskWarning    string          `json:"risk_warning,omitempty"`
	Social         SocialTelemetry `json:"social"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SocialDataPacket is the portable social snapshot handed from scout to refiner.
// Always passed by value; slices and maps are owned copies.
type SocialDataPacket struct {
	RawSentiment float64        `json:"raw_sentiment"`
	MentionCount int            `json:"mention_count"`
	Themes       []string       `json:"themes"`
	Sources      map[string]int `json:"sources"`
	Confidence   float64        `json:"confidence"`
	CapturedAt   time.Time      `json:"captured_at"`
}

// NewsAnalysis is the refiner's fundamental read of recent news
type NewsAnalysis struct {
	Sentiment         float64    `json:"sentiment" validate:"gte=-1,lte=1"`
	Confidence        float64    `json:"confidence" validate:"gte=0,lte=100"`
	Impact            NewsImpact `json:"impact" validate:"required,oneof=HIGH MEDIUM LOW"`
	KeyEvents         []string   `json:"key_events"`
	EarningsProximity bool       `json:"earnings_proximity"`
}

// RefinerAnalysis is the refiner's sentiment/narrative analysis of social data
type RefinerAnalysis struct {
	Sentiment        float64  `json:"sentiment" validate:"gte=-1,lte=1"`
	Confidence       float64  `json:"confidence" validate:"gte=0,lte=100"`
	Narrative        string   `json:"narrative"`
	KeyThemes        []string `json:"key_themes"`
	CrowdPsychology  string   `json:"crowd_psychology"`
	SarcasmDetected  bool     `json:"sarcasm_detected"`
	SocialNewsBridge float64  `json:"social_news_bridge" validate:"gte=-1,lte=1"`
}

// ConfidenceEquivalent remaps the refiner's [-1,1] sentiment onto the [0,100]
// confidence scale used by the scout. The refiner's own confidence field is
// deliberately not part of this mapping; it feeds only the narrative.
func (r *RefinerAnalysis) ConfidenceEquivalent() float64 {
	return (r.Sentiment + 1) * 50
}

package models

import "time"

// ConsensusResult is the final reconciled recommendation handed to downstream
// consumers. Created once per request and owned by exactly one goroutine at a
// time: resolver, then hybrid validator, then caller.
type ConsensusResult struct {
	Symbol                    string         `json:"symbol"`
	RequestID                 string         `json:"request_id"`
	FinalRecommendation       Recommendation `json:"final_recommendation"`
	ConsensusConfidence       float64        `json:"consensus_confidence"`
	AgreementLevel            AgreementLevel `json:"agreement_level"`
	ScoutScore                float64        `json:"scout_score"`
	RefinerScore              float64        `json:"refiner_score"`
	ConfidenceAdjustment      float64        `json:"confidence_adjustment"`
	Reasoning                 string         `json:"reasoning"`
	RiskWarning               string         `json:"risk_warning,omitempty"`
	SocialNewsBridge          float64        `json:"social_news_bridge"`
	HybridValidationTriggered bool           `json:"hybrid_validation_triggered"`
	Degraded                  bool           `json:"degraded"`
	DegradedReason            string         `json:"degraded_reason,omitempty"`
	CreatedAt                 time.Time      `json:"created_at"`
}

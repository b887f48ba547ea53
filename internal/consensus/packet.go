package consensus

import (
	"time"

	"github.com/selivandex/consensus-engine/pkg/models"
)

// BuildSocialPacket normalizes the scout's social telemetry into a portable
// packet for the refiner handoff. The packet owns copies of the telemetry's
// slices and maps so it can be passed by value across the boundary, and its
// numeric fields are clamped to their documented ranges.
func BuildSocialPacket(scout *models.ScoutAnalysis, capturedAt time.Time) models.SocialDataPacket {
	if scout == nil {
		return models.SocialDataPacket{CapturedAt: capturedAt}
	}

	tel := scout.Social

	themes := make([]string, len(tel.Themes))
	copy(themes, tel.Themes)

	sources := make(map[string]int, len(tel.Sources))
	for source, count := range tel.Sources {
		if count < 0 {
			count = 0
		}
		sources[source] = count
	}

	mentions := tel.MentionCount
	if mentions < 0 {
		mentions = 0
	}

	return models.SocialDataPacket{
		RawSentiment: clampSentiment(tel.RawSentiment),
		MentionCount: mentions,
		Themes:       themes,
		Sources:      sources,
		Confidence:   clampConfidence(tel.Confidence),
		CapturedAt:   capturedAt,
	}
}

// clampSentiment keeps a sentiment value inside [-1,1]
func clampSentiment(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

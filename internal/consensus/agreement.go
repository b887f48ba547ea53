package consensus

import (
	"math"

	"github.com/selivandex/consensus-engine/pkg/models"
)

// ClassifyAgreement classifies the gap between the scout's confidence and the
// refiner's confidence equivalent into a discrete agreement tier, and returns
// the multiplicative confidence adjustment for that tier. Pure function; band
// lower bounds are inclusive.
func ClassifyAgreement(scoutConfidence, refinerEquivalent float64) (models.AgreementLevel, float64) {
	diff := math.Abs(scoutConfidence - refinerEquivalent)

	switch {
	case diff <= strongAgreementMaxDiff:
		return models.StrongAgreement, strongAgreementBoost
	case diff <= partialAgreementMaxDiff:
		return models.PartialAgreement, 0.0
	default:
		return models.StrongDisagreement, strongDisagreementPenalty
	}
}

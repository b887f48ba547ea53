package consensus

import (
	"testing"

	"github.com/selivandex/consensus-engine/pkg/models"
)

func TestClassifyAgreement(t *testing.T) {
	tests := []struct {
		name           string
		scout          float64
		refiner        float64
		wantLevel      models.AgreementLevel
		wantAdjustment float64
	}{
		{
			name:           "identical confidences",
			scout:          70,
			refiner:        70,
			wantLevel:      models.StrongAgreement,
			wantAdjustment: 0.12,
		},
		{
			name:           "diff exactly 20 is still strong agreement",
			scout:          80,
			refiner:        60,
			wantLevel:      models.StrongAgreement,
			wantAdjustment: 0.12,
		},
		{
			name:           "diff just above 20 is partial agreement",
			scout:          80,
			refiner:        59.9999,
			wantLevel:      models.PartialAgreement,
			wantAdjustment: 0.0,
		},
		{
			name:           "diff exactly 50 is still partial agreement",
			scout:          90,
			refiner:        40,
			wantLevel:      models.PartialAgreement,
			wantAdjustment: 0.0,
		},
		{
			name:           "diff just above 50 is strong disagreement",
			scout:          90,
			refiner:        39.9999,
			wantLevel:      models.StrongDisagreement,
			wantAdjustment: -0.15,
		},
		{
			name:           "maximal gap",
			scout:          100,
			refiner:        0,
			wantLevel:      models.StrongDisagreement,
			wantAdjustment: -0.15,
		},
		{
			name:           "order of arguments does not matter",
			scout:          30,
			refiner:        90,
			wantLevel:      models.StrongDisagreement,
			wantAdjustment: -0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, adjustment := ClassifyAgreement(tt.scout, tt.refiner)

			if level != tt.wantLevel {
				t.Errorf("Expected level %s, got %s", tt.wantLevel, level)
			}
			if adjustment != tt.wantAdjustment {
				t.Errorf("Expected adjustment %.2f, got %.2f", tt.wantAdjustment, adjustment)
			}
		})
	}
}

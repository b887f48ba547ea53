package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the scout analysis against its field constraints
func (s *ScoutAnalysis) Validate() error {
	if s == nil {
		return fmt.Errorf("scout analysis is nil")
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scout analysis: %w", err)
	}
	return nil
}

// Validate checks the news analysis against its field constraints
func (n *NewsAnalysis) Validate() error {
	if n == nil {
		return fmt.Errorf("news analysis is nil")
	}
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("invalid news analysis: %w", err)
	}
	return nil
}

// Validate checks the refiner analysis against its field constraints
func (r *RefinerAnalysis) Validate() error {
	if r == nil {
		return fmt.Errorf("refiner analysis is nil")
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid refiner analysis: %w", err)
	}
	return nil
}

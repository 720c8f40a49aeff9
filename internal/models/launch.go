// Package models defines the core domain entities for the launch dashboard.
// These models represent launch records loaded from the dataset, the payload
// range selected by the user, and the figures derived from both.
//
// Terminology (matching the dataset's own column names):
//   - Launch Site: the physical location a mission launched from.
//   - class: the outcome of the mission's core objective, 1 for success and 0 for failure.
//   - Booster Version Category: hardware family, used only to colour scatter points.
package models

import (
	"errors"
	"fmt"
	"math"
)

// Outcome classes as they appear in the dataset's class column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

var (
	// ErrInvalidRange is returned when a payload range has lo > hi or a non-finite bound.
	ErrInvalidRange = errors.New("invalid payload range")
	// ErrInvalidPayload is returned for a negative or non-finite payload mass.
	ErrInvalidPayload = errors.New("invalid payload mass")
)

// LaunchRecord represents one row of the launch dataset.
// Records are immutable once loaded; the dataset store owns the full set.
type LaunchRecord struct {
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	OutcomeClass           int     `json:"class"`                    // 1 = success, 0 = failure
	BoosterVersionCategory string  `json:"booster_version_category"` // colour grouping only
}

// Validate checks that all record fields are valid.
func (r *LaunchRecord) Validate() error {
	if r.LaunchSite == "" {
		return errors.New("launch site must not be empty")
	}
	if !finite(r.PayloadMassKg) {
		return fmt.Errorf("%w: %v is not a finite number", ErrInvalidPayload, r.PayloadMassKg)
	}
	if r.PayloadMassKg < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidPayload, r.PayloadMassKg)
	}
	if r.OutcomeClass != OutcomeFailure && r.OutcomeClass != OutcomeSuccess {
		return fmt.Errorf("class must be 0 or 1, got %d", r.OutcomeClass)
	}
	return nil
}

// Succeeded reports whether the launch met its core objective.
func (r *LaunchRecord) Succeeded() bool {
	return r.OutcomeClass == OutcomeSuccess
}

// PayloadRange is an inclusive payload mass interval [Lo, Hi] in kilograms.
type PayloadRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Validate checks that both bounds are finite and Lo <= Hi.
func (p PayloadRange) Validate() error {
	if !finite(p.Lo) || !finite(p.Hi) {
		return fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, p.Lo, p.Hi)
	}
	if p.Lo > p.Hi {
		return fmt.Errorf("%w: lo %.0f > hi %.0f", ErrInvalidRange, p.Lo, p.Hi)
	}
	return nil
}

// Contains reports whether mass lies within the range, both ends inclusive.
func (p PayloadRange) Contains(mass float64) bool {
	return p.Lo <= mass && mass <= p.Hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

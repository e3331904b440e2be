// Package common holds the small immutable value types shared by the
// competition aggregate and the results engine.
package common

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval with a guaranteed start < end ordering.
// It is embedded into the competition aggregate, so the fields map straight
// onto the start_date / end_date columns.
type TimeRange struct {
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
}

// NewTimeRange creates a validated time range
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, fmt.Errorf("start and end dates are required")
	}
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("end date must be after start date")
	}
	return TimeRange{StartDate: start, EndDate: end}, nil
}

// Contains reports whether t falls inside the range
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.StartDate) && t.Before(r.EndDate)
}

// Length is a fish length in centimeters, never negative.
type Length float64

// NewLength creates a validated length
func NewLength(cm float64) (Length, error) {
	if cm < 0 {
		return 0, fmt.Errorf("length cannot be negative: %v", cm)
	}
	return Length(cm), nil
}

// Cm returns the raw centimeter value
func (l Length) Cm() float64 {
	return float64(l)
}

// Weight is a fish weight in kilograms, never negative.
type Weight float64

// NewWeight creates a validated weight
func NewWeight(kg float64) (Weight, error) {
	if kg < 0 {
		return 0, fmt.Errorf("weight cannot be negative: %v", kg)
	}
	return Weight(kg), nil
}

// Kg returns the raw kilogram value
func (w Weight) Kg() float64 {
	return float64(w)
}

package catalog

import (
	"database/sql/driver"
	"fmt"
)

// Metric names the measurement a category scores by.
type Metric byte

const (
	LengthCm Metric = iota
	WeightKg
	FishCount
	SpeciesVariety
	TimeOfCatch
	NotApplicable
)

func (m Metric) String() string {
	switch m {
	case LengthCm:
		return "length_cm"
	case WeightKg:
		return "weight_kg"
	case FishCount:
		return "fish_count"
	case SpeciesVariety:
		return "species_variety"
	case TimeOfCatch:
		return "time_of_catch"
	case NotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}

// MetricFromString converts a string to a Metric
func MetricFromString(s string) (Metric, bool) {
	switch s {
	case "length_cm":
		return LengthCm, true
	case "weight_kg":
		return WeightKg, true
	case "fish_count":
		return FishCount, true
	case "species_variety":
		return SpeciesVariety, true
	case "time_of_catch":
		return TimeOfCatch, true
	case "not_applicable":
		return NotApplicable, true
	default:
		return LengthCm, false
	}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	metric, valid := MetricFromString(unquote(data))
	if !valid {
		return fmt.Errorf("invalid metric: %s", data)
	}
	*m = metric
	return nil
}

func (m *Metric) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Metric", value)
	}
	metric, valid := MetricFromString(str)
	if !valid {
		return fmt.Errorf("invalid metric value: %s", str)
	}
	*m = metric
	return nil
}

func (m Metric) Value() (driver.Value, error) {
	return m.String(), nil
}

// EntityType names what a category scores over.
type EntityType byte

const (
	// FishCatch scores a single best catch
	FishCatch EntityType = iota
	// ParticipantAggregateCatches scores an aggregate over all of a
	// participant's catches
	ParticipantAggregateCatches
	// ParticipantProfile scores a participant attribute; no computation is
	// implemented for it yet
	ParticipantProfile
)

func (e EntityType) String() string {
	switch e {
	case FishCatch:
		return "fish_catch"
	case ParticipantAggregateCatches:
		return "participant_aggregate_catches"
	case ParticipantProfile:
		return "participant_profile"
	default:
		return "unknown"
	}
}

// EntityTypeFromString converts a string to an EntityType
func EntityTypeFromString(s string) (EntityType, bool) {
	switch s {
	case "fish_catch":
		return FishCatch, true
	case "participant_aggregate_catches":
		return ParticipantAggregateCatches, true
	case "participant_profile":
		return ParticipantProfile, true
	default:
		return FishCatch, false
	}
}

func (e EntityType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

func (e *EntityType) UnmarshalJSON(data []byte) error {
	entity, valid := EntityTypeFromString(unquote(data))
	if !valid {
		return fmt.Errorf("invalid entity type: %s", data)
	}
	*e = entity
	return nil
}

func (e *EntityType) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into EntityType", value)
	}
	entity, valid := EntityTypeFromString(str)
	if !valid {
		return fmt.Errorf("invalid entity type value: %s", str)
	}
	*e = entity
	return nil
}

func (e EntityType) Value() (driver.Value, error) {
	return e.String(), nil
}

// CategoryType distinguishes the main competitive outcome from side awards.
type CategoryType byte

const (
	MainScoring CategoryType = iota
	SpecialAchievement
	FunChallenge
)

func (t CategoryType) String() string {
	switch t {
	case MainScoring:
		return "main_scoring"
	case SpecialAchievement:
		return "special_achievement"
	case FunChallenge:
		return "fun_challenge"
	default:
		return "unknown"
	}
}

// CategoryTypeFromString converts a string to a CategoryType
func CategoryTypeFromString(s string) (CategoryType, bool) {
	switch s {
	case "main_scoring":
		return MainScoring, true
	case "special_achievement":
		return SpecialAchievement, true
	case "fun_challenge":
		return FunChallenge, true
	default:
		return MainScoring, false
	}
}

func (t CategoryType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *CategoryType) UnmarshalJSON(data []byte) error {
	ct, valid := CategoryTypeFromString(unquote(data))
	if !valid {
		return fmt.Errorf("invalid category type: %s", data)
	}
	*t = ct
	return nil
}

func (t *CategoryType) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into CategoryType", value)
	}
	ct, valid := CategoryTypeFromString(str)
	if !valid {
		return fmt.Errorf("invalid category type value: %s", str)
	}
	*t = ct
	return nil
}

func (t CategoryType) Value() (driver.Value, error) {
	return t.String(), nil
}

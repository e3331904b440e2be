package catalog

import (
	"database/sql/driver"
	"fmt"
)

// CalculationLogic is the strategy that turns a set of catches into one
// ranking value.
type CalculationLogic byte

const (
	MaxValue CalculationLogic = iota
	MinValue
	SumValue
	FirstOccurrence
	LastOccurrence
	ManualAssignment
)

func (l CalculationLogic) String() string {
	switch l {
	case MaxValue:
		return "max_value"
	case MinValue:
		return "min_value"
	case SumValue:
		return "sum_value"
	case FirstOccurrence:
		return "first_occurrence"
	case LastOccurrence:
		return "last_occurrence"
	case ManualAssignment:
		return "manual_assignment"
	default:
		return "unknown"
	}
}

// CalculationLogicFromString converts a string to a CalculationLogic
func CalculationLogicFromString(s string) (CalculationLogic, bool) {
	switch s {
	case "max_value":
		return MaxValue, true
	case "min_value":
		return MinValue, true
	case "sum_value":
		return SumValue, true
	case "first_occurrence":
		return FirstOccurrence, true
	case "last_occurrence":
		return LastOccurrence, true
	case "manual_assignment":
		return ManualAssignment, true
	default:
		return MaxValue, false
	}
}

// MarshalJSON implements the json.Marshaler interface
func (l CalculationLogic) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (l *CalculationLogic) UnmarshalJSON(data []byte) error {
	logic, valid := CalculationLogicFromString(unquote(data))
	if !valid {
		return fmt.Errorf("invalid calculation logic: %s", data)
	}
	*l = logic
	return nil
}

// Scan implements the sql.Scanner interface
func (l *CalculationLogic) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into CalculationLogic", value)
	}
	logic, valid := CalculationLogicFromString(str)
	if !valid {
		return fmt.Errorf("invalid calculation logic value: %s", str)
	}
	*l = logic
	return nil
}

// Value implements the driver.Valuer interface
func (l CalculationLogic) Value() (driver.Value, error) {
	return l.String(), nil
}

func unquote(data []byte) string {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

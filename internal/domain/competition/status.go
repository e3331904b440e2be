package competition

import (
	"database/sql/driver"
	"fmt"
)

// Status represents the lifecycle state of a competition
type Status byte

const (
	StatusDraft Status = iota
	StatusAcceptingRegistrations
	StatusScheduled
	StatusOngoing
	StatusFinished
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusAcceptingRegistrations:
		return "accepting_registrations"
	case StatusScheduled:
		return "scheduled"
	case StatusOngoing:
		return "ongoing"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StatusFromString converts a string to a Status
func StatusFromString(s string) (Status, bool) {
	switch s {
	case "draft":
		return StatusDraft, true
	case "accepting_registrations":
		return StatusAcceptingRegistrations, true
	case "scheduled":
		return StatusScheduled, true
	case "ongoing":
		return StatusOngoing, true
	case "finished":
		return StatusFinished, true
	case "cancelled":
		return StatusCancelled, true
	default:
		return StatusDraft, false
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Status) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid status: %s", str)
	}
	*s = status
	return nil
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *Status) Scan(value interface{}) error {
	if value == nil {
		*s = StatusDraft
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Status", value)
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid status value: %s", str)
	}
	*s = status
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// IsTerminal reports whether no further lifecycle movement is expected
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// Type distinguishes open competitions from invitation-only ones
type Type byte

const (
	TypePublic Type = iota
	TypePrivate
)

func (t Type) String() string {
	switch t {
	case TypePublic:
		return "public"
	case TypePrivate:
		return "private"
	default:
		return "unknown"
	}
}

// TypeFromString converts a string to a Type
func TypeFromString(s string) (Type, bool) {
	switch s {
	case "public":
		return TypePublic, true
	case "private":
		return TypePrivate, true
	default:
		return TypePublic, false
	}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	ct, valid := TypeFromString(str)
	if !valid {
		return fmt.Errorf("invalid competition type: %s", str)
	}
	*t = ct
	return nil
}

func (t *Type) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Type", value)
	}
	ct, valid := TypeFromString(str)
	if !valid {
		return fmt.Errorf("invalid competition type value: %s", str)
	}
	*t = ct
	return nil
}

func (t Type) Value() (driver.Value, error) {
	return t.String(), nil
}

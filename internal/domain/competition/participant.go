package competition

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a participant's function within one competition
type Role byte

const (
	RoleOrganizer Role = iota
	RoleJudge
	RoleCompetitor
)

func (r Role) String() string {
	switch r {
	case RoleOrganizer:
		return "organizer"
	case RoleJudge:
		return "judge"
	case RoleCompetitor:
		return "competitor"
	default:
		return "unknown"
	}
}

// RoleFromString converts a string to a Role
func RoleFromString(s string) (Role, bool) {
	switch s {
	case "organizer":
		return RoleOrganizer, true
	case "judge":
		return RoleJudge, true
	case "competitor":
		return RoleCompetitor, true
	default:
		return RoleCompetitor, false
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	role, valid := RoleFromString(str)
	if !valid {
		return fmt.Errorf("invalid role: %s", str)
	}
	*r = role
	return nil
}

func (r *Role) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	role, valid := RoleFromString(str)
	if !valid {
		return fmt.Errorf("invalid role value: %s", str)
	}
	*r = role
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

// ApprovalStatus represents the registration decision for a participant
type ApprovalStatus byte

const (
	ApprovalWaiting ApprovalStatus = iota
	ApprovalApproved
	ApprovalRejected
)

func (a ApprovalStatus) String() string {
	switch a {
	case ApprovalWaiting:
		return "waiting"
	case ApprovalApproved:
		return "approved"
	case ApprovalRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ApprovalStatusFromString converts a string to an ApprovalStatus
func ApprovalStatusFromString(s string) (ApprovalStatus, bool) {
	switch s {
	case "waiting":
		return ApprovalWaiting, true
	case "approved":
		return ApprovalApproved, true
	case "rejected":
		return ApprovalRejected, true
	default:
		return ApprovalWaiting, false
	}
}

func (a ApprovalStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *ApprovalStatus) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	status, valid := ApprovalStatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid approval status: %s", str)
	}
	*a = status
	return nil
}

func (a *ApprovalStatus) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into ApprovalStatus", value)
	}
	status, valid := ApprovalStatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid approval status value: %s", str)
	}
	*a = status
	return nil
}

func (a ApprovalStatus) Value() (driver.Value, error) {
	return a.String(), nil
}

// Participant is one (competition, identity, role) record. The same identity
// holds one record per role; guests carry no identity at all and are
// identified by their display name plus an optional guest code.
type Participant struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CompetitionID    uuid.UUID      `json:"competition_id" gorm:"type:uuid;not null"`
	UserID           *int64         `json:"user_id"`
	GuestCode        *string        `json:"guest_code"`
	Name             string         `json:"name" gorm:"not null"`
	Role             Role           `json:"role" gorm:"type:participant_role;not null"`
	ApprovalStatus   ApprovalStatus `json:"approval_status" gorm:"type:approval_status;not null;default:'waiting'"`
	AddedByOrganizer bool           `json:"added_by_organizer" gorm:"default:false"`
	Sector           *string        `json:"sector"`
	Stand            *string        `json:"stand"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Participant) TableName() string {
	return "participants"
}

// BeforeCreate sets a UUID before creating the record
func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsGuest reports whether the participant has no backing identity
func (p *Participant) IsGuest() bool {
	return p.UserID == nil
}

// IsApprovedCompetitor reports whether the participant counts for results
func (p *Participant) IsApprovedCompetitor() bool {
	return p.Role == RoleCompetitor && p.ApprovalStatus == ApprovalApproved
}

// HasSector reports whether a non-blank sector label is assigned
func (p *Participant) HasSector() bool {
	return p.Sector != nil && strings.TrimSpace(*p.Sector) != ""
}

// AssignToSectorAndStand trims both labels and stores nil for blanks.
// Occupancy conflicts are checked by the caller against the whole
// competition before this is applied.
func (p *Participant) AssignToSectorAndStand(sector, stand string) {
	p.Sector = normalizeLabel(sector)
	p.Stand = normalizeLabel(stand)
}

// OccupiesSlot reports whether the participant holds exactly this
// (sector, stand) pair
func (p *Participant) OccupiesSlot(sector, stand string) bool {
	s := normalizeLabel(sector)
	st := normalizeLabel(stand)
	if s == nil || st == nil || p.Sector == nil || p.Stand == nil {
		return false
	}
	return *p.Sector == *s && *p.Stand == *st
}

func normalizeLabel(label string) *string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

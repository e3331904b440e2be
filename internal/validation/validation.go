package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength valida la longitud mínima de un string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return fmt.Errorf("%s must be at least %d characters long", fieldName, minLength)
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateUUID valida que un string sea un UUID válido
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateDateRange valida que una fecha esté en el rango correcto
func ValidateDateRange(startDate, endDate time.Time) error {
	if !startDate.Before(endDate) {
		return errors.New("end date must be after start date")
	}
	return nil
}

// CompetitionValidation contiene validaciones específicas para competiciones
type CompetitionValidation struct{}

// ValidateName valida el nombre de una competición
func (v CompetitionValidation) ValidateName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 3, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateRules valida el reglamento de una competición
func (v CompetitionValidation) ValidateRules(rules string) error {
	return ValidateMaxLength(rules, 10000, "rules")
}

// ParticipantValidation contiene validaciones específicas para participantes
type ParticipantValidation struct{}

// ValidateDisplayName valida el nombre visible de un participante
func (v ParticipantValidation) ValidateDisplayName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

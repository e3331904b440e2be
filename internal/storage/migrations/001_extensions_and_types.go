package migrations

import "gorm.io/gorm"

// migration001Up creates extensions and custom types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return err
	}

	types := []string{
		`CREATE TYPE competition_status AS ENUM (
            'draft',
            'accepting_registrations',
            'scheduled',
            'ongoing',
            'finished',
            'cancelled'
        )`,
		`CREATE TYPE competition_type AS ENUM (
            'public',
            'private'
        )`,
		`CREATE TYPE participant_role AS ENUM (
            'organizer',
            'judge',
            'competitor'
        )`,
		`CREATE TYPE approval_status AS ENUM (
            'waiting',
            'approved',
            'rejected'
        )`,
		`CREATE TYPE calculation_logic AS ENUM (
            'max_value',
            'min_value',
            'sum_value',
            'first_occurrence',
            'last_occurrence',
            'manual_assignment'
        )`,
		`CREATE TYPE catch_metric AS ENUM (
            'length_cm',
            'weight_kg',
            'fish_count',
            'species_variety',
            'time_of_catch',
            'not_applicable'
        )`,
		`CREATE TYPE entity_type AS ENUM (
            'fish_catch',
            'participant_aggregate_catches',
            'participant_profile'
        )`,
		`CREATE TYPE category_type AS ENUM (
            'main_scoring',
            'special_achievement',
            'fun_challenge'
        )`,
	}

	for _, typeSQL := range types {
		if err := db.Exec(typeSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration001Down drops extensions and custom types
func migration001Down(db *gorm.DB) error {
	types := []string{
		"category_type",
		"entity_type",
		"catch_metric",
		"calculation_logic",
		"approval_status",
		"participant_role",
		"competition_type",
		"competition_status",
	}

	for _, name := range types {
		if err := db.Exec("DROP TYPE IF EXISTS " + name + " CASCADE").Error; err != nil {
			return err
		}
	}

	// NOTE: We don't drop the UUID extension as it might be used by other applications
	return nil
}

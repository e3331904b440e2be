package migrations

import "gorm.io/gorm"

// migration003Up creates performance indexes and the uniqueness backstops
// that in-process checks alone cannot guarantee under concurrency
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_competitions_organizer ON competitions(organizer_id)",
		"CREATE INDEX IF NOT EXISTS idx_competitions_status ON competitions(status)",
		"CREATE INDEX IF NOT EXISTS idx_competitions_fishery ON competitions(fishery_id)",
		"CREATE INDEX IF NOT EXISTS idx_competitions_dates ON competitions(start_date, end_date)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_competitions_results_token ON competitions(results_token)",

		"CREATE INDEX IF NOT EXISTS idx_participants_competition ON participants(competition_id)",
		"CREATE INDEX IF NOT EXISTS idx_participants_user ON participants(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_participants_role ON participants(role)",

		// one record per (competition, identity, role); guests have no identity
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_identity_role
            ON participants(competition_id, user_id, role)
            WHERE user_id IS NOT NULL`,

		// guest codes are unique within a competition when supplied
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_guest_code
            ON participants(competition_id, guest_code)
            WHERE guest_code IS NOT NULL`,

		// backstop for the check-then-act stand assignment: two approved
		// competitors can never hold the same (sector, stand) pair even if
		// both pass the in-process check concurrently
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_sector_stand
            ON participants(competition_id, sector, stand)
            WHERE sector IS NOT NULL AND stand IS NOT NULL
              AND role = 'competitor' AND approval_status = 'approved'`,

		"CREATE INDEX IF NOT EXISTS idx_competition_categories_competition ON competition_categories(competition_id)",
		"CREATE INDEX IF NOT EXISTS idx_competition_categories_definition ON competition_categories(definition_id)",
		"CREATE INDEX IF NOT EXISTS idx_competition_categories_sort ON competition_categories(competition_id, sort_order)",

		"CREATE INDEX IF NOT EXISTS idx_fish_catches_competition ON fish_catches(competition_id)",
		"CREATE INDEX IF NOT EXISTS idx_fish_catches_participant ON fish_catches(participant_id)",
		"CREATE INDEX IF NOT EXISTS idx_fish_catches_judge ON fish_catches(judge_participant_id)",
		"CREATE INDEX IF NOT EXISTS idx_fish_catches_caught_at ON fish_catches(caught_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_fish_catches_caught_at",
		"idx_fish_catches_judge",
		"idx_fish_catches_participant",
		"idx_fish_catches_competition",
		"idx_competition_categories_sort",
		"idx_competition_categories_definition",
		"idx_competition_categories_competition",
		"idx_participants_sector_stand",
		"idx_participants_guest_code",
		"idx_participants_identity_role",
		"idx_participants_role",
		"idx_participants_user",
		"idx_participants_competition",
		"idx_competitions_results_token",
		"idx_competitions_dates",
		"idx_competitions_fishery",
		"idx_competitions_status",
		"idx_competitions_organizer",
	}

	for _, name := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + name).Error; err != nil {
			return err
		}
	}

	return nil
}

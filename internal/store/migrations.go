package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Items table - one row per interactive scene item. Identity,
		// category, and slot are fixed at pool creation; message and
		// image_path hold the user-edited content.
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL CHECK(category IN ('gift', 'frame')),
			slot INTEGER NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			image_path TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(category, slot)
		)`,

		// Settings table - tunable pipeline constants as key-value pairs
		// (confidence window, pinch threshold, focus distance, ...).
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

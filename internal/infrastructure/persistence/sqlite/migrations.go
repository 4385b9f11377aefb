package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS processed_payments (
			payment_id TEXT PRIMARY KEY,
			processed_at TEXT NOT NULL,
			amount TEXT NOT NULL,
			payment_date TEXT,
			payment_type TEXT NOT NULL,
			source TEXT NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

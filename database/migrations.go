package database

import (
	"fmt"
)

func RunMigrations() error {
	usersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(usersSQL); err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	reviewsSQL := `
	CREATE TABLE IF NOT EXISTS reviews (
		id SERIAL PRIMARY KEY,
		tmdb_id INTEGER NOT NULL,
		rating NUMERIC(3,1),
		review TEXT DEFAULT '',
		recommended TEXT DEFAULT '',
		status VARCHAR(20) DEFAULT 'watched',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := DB.Exec(reviewsSQL); err != nil {
		return fmt.Errorf("failed to run reviews migration: %w", err)
	}

	// The status column arrived with the watchlist feature; rows imported
	// before it exist without one and are treated as watched.
	reviewsColumnsSQL := `
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='reviews' AND column_name='status') THEN
			ALTER TABLE reviews ADD COLUMN status VARCHAR(20) DEFAULT 'watched';
		END IF;
	END $$;
	`

	if _, err := DB.Exec(reviewsColumnsSQL); err != nil {
		return fmt.Errorf("failed to run reviews column migration: %w", err)
	}

	return nil
}

package database

import (
	"fmt"

	"jjreviews/config"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the admin account from environment credentials.
// There is no self-service registration; the admin is the only writer.
func SeedAdminUser(cfg *config.Config) error {
	// No password configured means no seeding; the site stays read-only.
	if cfg.AdminPassword == "" {
		return nil
	}

	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", cfg.AdminUsername).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin user: %w", err)
	}

	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = DB.Exec(
		"INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4)",
		cfg.AdminUsername,
		cfg.AdminEmail,
		string(hashedPassword),
		true,
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forge-os/pulse/config"
	"github.com/forge-os/pulse/internal/database/schema"
	"github.com/forge-os/pulse/internal/domain"
)

// ConnectionString builds a postgres DSN from the database config.
func ConnectionString(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

// Connect opens and pings the system database.
func Connect(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// InitializeDatabase creates all necessary tables if they don't exist and
// seeds an admin user for each allow-listed email that has no row yet.
func InitializeDatabase(db *sql.DB, adminEmails []string) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, email := range adminEmails {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check admin user existence: %w", err)
		}
		if exists {
			continue
		}

		now := time.Now().UTC()
		query := `
			INSERT INTO users (id, email, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = db.Exec(query,
			uuid.New().String(),
			email,
			domain.NameFromEmail(email),
			domain.RoleAdmin,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	return nil
}

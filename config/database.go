package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS report_snapshots (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			report_type VARCHAR(50) NOT NULL,
			from_date DATE NOT NULL,
			to_date DATE NOT NULL,
			input_hash VARCHAR(64) NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classification_rules (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			category VARCHAR(255) UNIQUE NOT NULL,
			activity VARCHAR(20) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_report_snapshots_key
			ON report_snapshots(report_type, from_date, to_date, input_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_report_snapshots_created_at
			ON report_snapshots(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

package sqlite

import (
	"context"
	"fmt"
)

// schema is applied on every scope entry. There is no versioning: a changed
// schema needs a fresh database file.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		cid INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plants (
		pid INTEGER PRIMARY KEY,
		name TEXT,
		latin_name TEXT UNIQUE,
		blooming_period TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		mid INTEGER PRIMARY KEY,
		name TEXT,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS months (
		mid INTEGER REFERENCES jobs,
		month TEXT,
		PRIMARY KEY (mid, month)
	)`,
	`CREATE TABLE IF NOT EXISTS client_plant_junction (
		cid INTEGER REFERENCES clients,
		pid INTEGER REFERENCES plants,
		PRIMARY KEY (cid, pid)
	)`,
	`CREATE TABLE IF NOT EXISTS plant_job_junction (
		pid INTEGER REFERENCES plants,
		mid INTEGER REFERENCES jobs,
		PRIMARY KEY (pid, mid)
	)`,
}

func ensureSchema(ctx context.Context, s *Scope) error {
	for _, stmt := range schema {
		if _, err := s.perform(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

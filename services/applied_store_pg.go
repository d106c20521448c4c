package services

import (
	"database/sql"
	"fmt"
)

// PostgresAppliedStore keeps applied internship IDs in a Postgres table.
// Selected when DATABASE_URL is configured; the file store remains the
// default. Saves upsert so re-saving the full set is idempotent.
type PostgresAppliedStore struct {
	DB *sql.DB
}

func NewPostgresAppliedStore(db *sql.DB) (*PostgresAppliedStore, error) {
	store := &PostgresAppliedStore{DB: db}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresAppliedStore) ensureSchema() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS applied_internships (
			internship_id TEXT PRIMARY KEY,
			applied_at    TIMESTAMP NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create applied_internships table: %w", err)
	}
	return nil
}

func (s *PostgresAppliedStore) Load() (*AppliedSet, error) {
	rows, err := s.DB.Query(`SELECT internship_id FROM applied_internships ORDER BY applied_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load applied internships: %w", err)
	}
	defer rows.Close()

	set := NewAppliedSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan applied internship: %w", err)
		}
		set.Add(id)
	}

	return set, rows.Err()
}

func (s *PostgresAppliedStore) Save(set *AppliedSet) error {
	for _, id := range set.IDs() {
		_, err := s.DB.Exec(`
			INSERT INTO applied_internships (internship_id)
			VALUES ($1)
			ON CONFLICT (internship_id) DO NOTHING`, id)
		if err != nil {
			return fmt.Errorf("failed to save applied internship %s: %w", id, err)
		}
	}
	return nil
}

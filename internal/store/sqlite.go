package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

const schema = `
CREATE TABLE IF NOT EXISTS samples (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	observed_at DATETIME NOT NULL,
	temperature REAL NOT NULL,
	humidity    REAL NOT NULL,
	light       INTEGER NOT NULL
);`

// SQLiteSink stores samples in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Append stores one sample.
func (s *SQLiteSink) Append(sample telemetry.Sample) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (observed_at, temperature, humidity, light) VALUES (?, ?, ?, ?)`,
		sample.ObservedAt.UTC().Format(time.RFC3339),
		sample.Temperature,
		sample.Humidity,
		sample.Light,
	)
	if err != nil {
		return fmt.Errorf("append sample: %w", err)
	}
	return nil
}

// QueryLastN returns up to n samples, oldest first.
func (s *SQLiteSink) QueryLastN(n int) ([]telemetry.Sample, error) {
	rows, err := s.db.Query(
		`SELECT observed_at, temperature, humidity, light FROM samples ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query last %d: %w", n, err)
	}
	defer rows.Close()

	var out []telemetry.Sample
	for rows.Next() {
		var (
			ts     string
			sample telemetry.Sample
		)
		if err := rows.Scan(&ts, &sample.Temperature, &sample.Humidity, &sample.Light); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		at, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		sample.ObservedAt = at
		out = append(out, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}

	// Rows came newest-first; flip to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

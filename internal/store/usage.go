package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pension-report/internal/model"
)

const schema = `CREATE TABLE IF NOT EXISTS usage_records (
	seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
	id                  TEXT NOT NULL UNIQUE,
	recorded_at         TEXT NOT NULL,
	generated_date      TEXT NOT NULL,
	generated_time      TEXT NOT NULL,
	expected_pension    REAL NOT NULL,
	age                 INTEGER NOT NULL,
	gender              TEXT NOT NULL,
	income              REAL NOT NULL,
	includes_sick_leave INTEGER NOT NULL,
	savings             REAL NOT NULL,
	actual_pension      REAL NOT NULL,
	adjusted_pension    REAL NOT NULL,
	postal_code         TEXT NOT NULL
)`

// UsageStore is the append-only log of exported report records.
type UsageStore struct {
	db *sql.DB
}

// Open opens (or creates) the usage log at dsn, e.g. "file:usage.db" or
// ":memory:".
func Open(dsn string) (*UsageStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage store: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create usage schema: %w", err)
	}
	return &UsageStore{db: db}, nil
}

func (s *UsageStore) Close() error {
	return s.db.Close()
}

// Append records rec and returns its id.
func (s *UsageStore) Append(rec model.ReportRecord) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(`INSERT INTO usage_records (
		id, recorded_at, generated_date, generated_time, expected_pension, age, gender,
		income, includes_sick_leave, savings, actual_pension, adjusted_pension, postal_code
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339),
		rec.GeneratedDate, rec.GeneratedTime, rec.ExpectedPension, rec.Age, string(rec.Gender),
		rec.Income, rec.IncludesSickLeave, rec.Savings, rec.ActualPension, rec.AdjustedPension, rec.PostalCode,
	)
	if err != nil {
		return "", fmt.Errorf("failed to append usage record: %w", err)
	}
	return id, nil
}

// List returns all records in insertion order.
func (s *UsageStore) List() ([]model.ReportRecord, error) {
	rows, err := s.db.Query(`SELECT generated_date, generated_time, expected_pension, age, gender,
		income, includes_sick_leave, savings, actual_pension, adjusted_pension, postal_code
		FROM usage_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}
	defer rows.Close()

	records := []model.ReportRecord{}
	for rows.Next() {
		var rec model.ReportRecord
		var gender string
		if err := rows.Scan(
			&rec.GeneratedDate, &rec.GeneratedTime, &rec.ExpectedPension, &rec.Age, &gender,
			&rec.Income, &rec.IncludesSickLeave, &rec.Savings, &rec.ActualPension, &rec.AdjustedPension, &rec.PostalCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		rec.Gender = model.Gender(gender)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage records: %w", err)
	}
	return records, nil
}

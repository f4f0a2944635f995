package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/weatherwidget/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS lookup_logs (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL DEFAULT '',
		query       TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		condition   TEXT NOT NULL DEFAULT '',
		temperature REAL,
		humidity    INTEGER,
		wind_speed  REAL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS lookup_logs_created_at_idx ON lookup_logs (created_at DESC);
`

// timeLayout is fixed-width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements domain.LookupRepository on a local file
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveLookup persists a resolved lookup
func (r *SQLiteRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	query := `
		INSERT INTO lookup_logs (
			id, session_id, query, outcome, location, condition,
			temperature, humidity, wind_speed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.SessionID, entry.Query, entry.Outcome, entry.Location, entry.Condition,
		entry.TemperatureC, entry.Humidity, entry.WindSpeed, entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save lookup: %w", err)
	}
	return nil
}

// RecentLookups returns up to limit entries, newest first
func (r *SQLiteRepository) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	query := `
		SELECT id, session_id, query, outcome, location, condition,
			   temperature, humidity, wind_speed, created_at
		FROM lookup_logs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []domain.LookupLog
	for rows.Next() {
		var (
			l       domain.LookupLog
			temp    sql.NullFloat64
			hum     sql.NullInt64
			wind    sql.NullFloat64
			created string
		)
		if err := rows.Scan(
			&l.ID, &l.SessionID, &l.Query, &l.Outcome, &l.Location, &l.Condition,
			&temp, &hum, &wind, &created,
		); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan lookup row: %w", err)
		}

		if temp.Valid {
			l.TemperatureC = &temp.Float64
		}
		if hum.Valid {
			h := int(hum.Int64)
			l.Humidity = &h
		}
		if wind.Valid {
			l.WindSpeed = &wind.Float64
		}
		if l.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("sqlite: bad created_at %q: %w", created, err)
		}

		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate lookups: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *SQLiteRepository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weatherwidget/backend/internal/domain"
)

var schema = []string{`
	CREATE TABLE IF NOT EXISTS lookup_logs (
		id          UUID PRIMARY KEY,
		session_id  TEXT NOT NULL DEFAULT '',
		query       TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		condition   TEXT NOT NULL DEFAULT '',
		temperature DOUBLE PRECISION,
		humidity    INTEGER,
		wind_speed  DOUBLE PRECISION,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS lookup_logs_created_at_idx ON lookup_logs (created_at DESC)`,
}

// PostgresRepository implements domain.LookupRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the lookup_logs table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: failed to migrate: %w", err)
		}
	}
	return nil
}

// SaveLookup persists a resolved lookup to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	query := `
		INSERT INTO lookup_logs (
			id, session_id, query, outcome, location, condition,
			temperature, humidity, wind_speed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.SessionID, entry.Query, entry.Outcome, entry.Location, entry.Condition,
		entry.TemperatureC, entry.Humidity, entry.WindSpeed, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup: %w", err)
	}

	return nil
}

// RecentLookups retrieves the newest lookups from PostgreSQL
func (r *PostgresRepository) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	query := `
		SELECT id::text, session_id, query, outcome, location, condition,
			   temperature, humidity, wind_speed, created_at
		FROM lookup_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []domain.LookupLog
	for rows.Next() {
		var l domain.LookupLog
		err := rows.Scan(
			&l.ID, &l.SessionID, &l.Query, &l.Outcome, &l.Location, &l.Condition,
			&l.TemperatureC, &l.Humidity, &l.WindSpeed, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate lookups: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

package domain

import (
	"context"
	"time"
)

// LookupLog is one resolved lookup as kept in history
type LookupLog struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id,omitempty"`
	Query        string    `json:"query"`
	Outcome      string    `json:"outcome"`
	Location     string    `json:"location,omitempty"`
	Condition    string    `json:"condition,omitempty"`
	TemperatureC *float64  `json:"temperature,omitempty"`
	Humidity     *int      `json:"humidity,omitempty"`
	WindSpeed    *float64  `json:"wind_speed,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OutcomeFound is the Outcome value for a successful lookup
const OutcomeFound = "found"

// LookupRepository defines the interface for lookup history persistence
type LookupRepository interface {
	// SaveLookup persists one resolved lookup
	SaveLookup(ctx context.Context, entry LookupLog) error

	// RecentLookups returns up to limit entries, newest first
	RecentLookups(ctx context.Context, limit int) ([]LookupLog, error)

	// Health checks store connectivity
	Health(ctx context.Context) error
}

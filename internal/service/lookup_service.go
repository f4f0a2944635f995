package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// LookupService fronts a Fetcher and records every resolved lookup
type LookupService struct {
	fetcher Fetcher
	repo    LookupRepository
	now     func() time.Time

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewLookupService creates a new lookup service
func NewLookupService(fetcher Fetcher, repo LookupRepository) *LookupService {
	return &LookupService{
		fetcher: fetcher,
		repo:    repo,
		now:     time.Now,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *LookupService) WaitBackground() {
	s.wgBg.Wait()
}

// Lookup resolves query and logs the outcome asynchronously
func (s *LookupService) Lookup(ctx context.Context, query string) domain.LookupResult {
	return s.LookupFor(ctx, "", query)
}

// LookupFor is Lookup attributed to a widget session
func (s *LookupService) LookupFor(ctx context.Context, sessionID, query string) domain.LookupResult {
	res := s.fetcher.Lookup(ctx, query)
	if res.Err != nil && res.Err.Kind == domain.EmptyQuery {
		return res
	}

	entry := s.logEntry(sessionID, strings.TrimSpace(query), res)

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveLookup(bgCtx, entry); err != nil {
			log.Printf("Failed to save lookup log: %v", err)
		}
	}()

	return res
}

// History returns recent lookups, newest first
func (s *LookupService) History(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = utils.ClampInt(limit, 1, maxHistoryLimit)
	return s.repo.RecentLookups(ctx, limit)
}

// Health checks the history store
func (s *LookupService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

func (s *LookupService) logEntry(sessionID, query string, res domain.LookupResult) domain.LookupLog {
	entry := domain.LookupLog{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Query:     query,
		CreatedAt: s.now().UTC(),
	}

	if res.Err != nil {
		entry.Outcome = res.Err.Code
		return entry
	}

	rec := res.Record
	temp, hum, wind := rec.TemperatureC, rec.Humidity, rec.WindSpeed
	entry.Outcome = domain.OutcomeFound
	entry.Location = rec.Location
	entry.Condition = rec.ConditionMain
	entry.TemperatureC = &temp
	entry.Humidity = &hum
	entry.WindSpeed = &wind
	return entry
}

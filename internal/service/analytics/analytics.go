package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/internal/repo"
)

const dashboardCacheKey = "mindwell:analytics:dashboard"

var ErrStorage = errors.New("analytics data unavailable")

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	StudentProfiles(ctx context.Context) ([]StudentProfile, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type analyticsService struct {
	db     *repo.Client
	cache  *goredis.Client
	ttl    time.Duration
	recent int
	logger *slog.Logger
	now    func() time.Time
}

// New builds the dashboard service. cache may be nil, in which case every
// call aggregates from Postgres.
func New(db *repo.Client, cache *goredis.Client, cfg config.AnalyticsConfig, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	recent := cfg.RecentFlagged
	if recent <= 0 {
		recent = DefaultRecentFlagged
	}
	return &analyticsService{
		db:     db,
		cache:  cache,
		ttl:    time.Duration(cfg.CacheTTLSeconds) * time.Second,
		recent: recent,
		logger: logger,
		now:    time.Now,
	}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if d, ok := s.cached(ctx); ok {
		return d, nil
	}

	now := s.now()
	window, err := s.db.Assessment.ListSince(ctx, now.Add(-windowDays*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	totals, err := s.db.Assessment.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	flagged, err := s.db.Assessment.ListFlagged(ctx, s.recent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	d := buildDashboard(window, totals, flagged, now, s.recent)
	s.store(ctx, &d)
	return &d, nil
}

func (s *analyticsService) StudentProfiles(ctx context.Context) ([]StudentProfile, error) {
	stats, err := s.db.Assessment.UserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	latest, err := s.db.Assessment.ListLatestPerUser(ctx, profileWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return buildProfiles(stats, latest), nil
}

// Cache failures degrade to a fresh aggregation.
func (s *analyticsService) cached(ctx context.Context) (*Dashboard, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.logger.WarnContext(ctx, "dashboard cache read failed", slog.Any("error", err))
		}
		return nil, false
	}

	var d Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache entry corrupt", slog.Any("error", err))
		return nil, false
	}
	return &d, true
}

func (s *analyticsService) store(ctx context.Context, d *Dashboard) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard encode failed", slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", slog.Any("error", err))
	}
}

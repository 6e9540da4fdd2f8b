// Package dashboard simulates the live counters and activity feed of the
// command center.
package dashboard

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/config"
	"github.com/xkilldash9x/prahari/internal/observability"
)

const (
	initialActiveThreats = 1284
	accountsTakenDown    = 843
	identitiesMonitored  = 45200
	regionsCovered       = 12

	// velocityUpdateChance is the probability that a stats tick also moves
	// the latest day of the weekly series.
	velocityUpdateChance = 0.3
	velocityFloor        = 10

	defaultStatsInterval = 2 * time.Second
	defaultFeedInterval  = 3500 * time.Millisecond
	defaultFeedSize      = 5
)

// AttackMessages feed the live activity log.
var AttackMessages = []string{
	"SQL Injection blocked from IP 192.168.X.X",
	"Botnet signature detected: Twitter/X Cluster",
	"Phishing attempt flagged: user @admin_support",
	"DDoS mitigation active: Server Alpha",
	"New suspect profile added to watchlist",
}

func initialVelocity() []schemas.SeriesPoint {
	return []schemas.SeriesPoint{
		{Name: "Mon", Value: 12},
		{Name: "Tue", Value: 19},
		{Name: "Wed", Value: 32},
		{Name: "Thu", Value: 24},
		{Name: "Fri", Value: 45},
		{Name: "Sat", Value: 38},
		{Name: "Sun", Value: 52},
	}
}

func platformDistribution() []schemas.SeriesPoint {
	return []schemas.SeriesPoint{
		{Name: string(schemas.PlatformTwitter), Value: 400},
		{Name: string(schemas.PlatformInstagram), Value: 300},
		{Name: string(schemas.PlatformFacebook), Value: 300},
		{Name: string(schemas.PlatformTelegram), Value: 200},
	}
}

// Simulator owns the mutable dashboard state. Run drives it; Snapshot may be
// called from any goroutine.
type Simulator struct {
	cfg     config.DashboardConfig
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time

	mu            sync.RWMutex
	rng           *rand.Rand
	activeThreats int
	velocity      []schemas.SeriesPoint
	activity      []schemas.ActivityEntry
}

// NewSimulator creates a simulator in its initial state. metrics may be nil.
func NewSimulator(cfg config.DashboardConfig, rng *rand.Rand, metrics *observability.Metrics, logger *zap.Logger) *Simulator {
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = defaultStatsInterval
	}
	if cfg.FeedInterval <= 0 {
		cfg.FeedInterval = defaultFeedInterval
	}
	if cfg.FeedSize <= 0 {
		cfg.FeedSize = defaultFeedSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Simulator{
		cfg:           cfg,
		logger:        logger.Named("dashboard"),
		metrics:       metrics,
		now:           time.Now,
		rng:           rng,
		activeThreats: initialActiveThreats,
		velocity:      initialVelocity(),
		activity:      []schemas.ActivityEntry{},
	}
	metrics.SetActiveThreats(s.activeThreats)
	return s
}

// Run advances the simulation until ctx is cancelled. It always returns nil
// so it can sit in an errgroup next to the HTTP server.
func (s *Simulator) Run(ctx context.Context) error {
	statsTicker := time.NewTicker(s.cfg.StatsInterval)
	defer statsTicker.Stop()
	feedTicker := time.NewTicker(s.cfg.FeedInterval)
	defer feedTicker.Stop()

	s.logger.Info("Dashboard simulator started",
		zap.Duration("stats_interval", s.cfg.StatsInterval),
		zap.Duration("feed_interval", s.cfg.FeedInterval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Dashboard simulator stopped")
			return nil
		case <-statsTicker.C:
			s.Tick()
		case <-feedTicker.C:
			s.Feed()
		}
	}
}

// Tick applies one stats step: active threats drift by -1, 0 or +1, and
// occasionally the latest day of the weekly series fluctuates.
func (s *Simulator) Tick() {
	s.mu.Lock()
	s.activeThreats += s.rng.Intn(3) - 1
	if s.rng.Float64() < velocityUpdateChance {
		last := &s.velocity[len(s.velocity)-1]
		last.Value = max(velocityFloor, last.Value+s.rng.Intn(10)-5)
	}
	active := s.activeThreats
	s.mu.Unlock()

	s.metrics.SetActiveThreats(active)
}

// Feed prepends a random attack line to the activity log, keeping only the
// most recent entries.
func (s *Simulator) Feed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := schemas.ActivityEntry{
		Time:    s.now().Format("15:04:05"),
		Message: AttackMessages[s.rng.Intn(len(AttackMessages))],
	}
	s.activity = append([]schemas.ActivityEntry{entry}, s.activity...)
	if len(s.activity) > s.cfg.FeedSize {
		s.activity = s.activity[:s.cfg.FeedSize]
	}
}

// Snapshot returns a deep copy of the current dashboard state.
func (s *Simulator) Snapshot() schemas.DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return schemas.DashboardSnapshot{
		Stats: schemas.DashboardStats{
			ActiveThreats:       s.activeThreats,
			AccountsTakenDown:   accountsTakenDown,
			IdentitiesMonitored: identitiesMonitored,
			RegionsCovered:      regionsCovered,
		},
		ThreatVelocity:       append([]schemas.SeriesPoint(nil), s.velocity...),
		PlatformDistribution: platformDistribution(),
		ActivityLog:          append([]schemas.ActivityEntry{}, s.activity...),
	}
}

package dashboard

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/internal/config"
	"github.com/xkilldash9x/prahari/internal/observability"
)

func newTestSimulator(t *testing.T, seed int64, metrics *observability.Metrics) *Simulator {
	t.Helper()
	cfg := config.DashboardConfig{StatsInterval: time.Hour, FeedInterval: time.Hour, FeedSize: 5}
	return NewSimulator(cfg, rand.New(rand.NewSource(seed)), metrics, zap.NewNop())
}

func TestSnapshot_InitialState(t *testing.T) {
	sim := newTestSimulator(t, 1, nil)
	snap := sim.Snapshot()

	assert.Equal(t, 1284, snap.Stats.ActiveThreats)
	assert.Equal(t, 843, snap.Stats.AccountsTakenDown)
	assert.Equal(t, 45200, snap.Stats.IdentitiesMonitored)
	assert.Equal(t, 12, snap.Stats.RegionsCovered)

	require.Len(t, snap.ThreatVelocity, 7)
	assert.Equal(t, "Mon", snap.ThreatVelocity[0].Name)
	assert.Equal(t, 12, snap.ThreatVelocity[0].Value)
	assert.Equal(t, "Sun", snap.ThreatVelocity[6].Name)
	assert.Equal(t, 52, snap.ThreatVelocity[6].Value)

	require.Len(t, snap.PlatformDistribution, 4)
	total := 0
	for _, p := range snap.PlatformDistribution {
		total += p.Value
	}
	assert.Equal(t, 1200, total)

	assert.NotNil(t, snap.ActivityLog)
	assert.Empty(t, snap.ActivityLog)
}

func TestTick_Bounds(t *testing.T) {
	sim := newTestSimulator(t, 2, nil)
	for i := 0; i < 1000; i++ {
		before := sim.Snapshot()
		sim.Tick()
		after := sim.Snapshot()

		delta := after.Stats.ActiveThreats - before.Stats.ActiveThreats
		assert.True(t, delta >= -1 && delta <= 1, "active threats moved by %d", delta)

		for day := 0; day < 6; day++ {
			assert.Equal(t, before.ThreatVelocity[day], after.ThreatVelocity[day], "only the last day may change")
		}
		sun := after.ThreatVelocity[6].Value
		assert.GreaterOrEqual(t, sun, 10)
		move := sun - before.ThreatVelocity[6].Value
		if sun > 10 {
			assert.True(t, move >= -5 && move <= 4, "sunday moved by %d", move)
		}
	}
}

func TestTick_PublishesGauge(t *testing.T) {
	metrics := observability.NewMetrics("test")
	sim := newTestSimulator(t, 3, metrics)
	assert.Equal(t, 1284.0, testutil.ToFloat64(metrics.ActiveThreats))

	sim.Tick()
	assert.Equal(t, float64(sim.Snapshot().Stats.ActiveThreats), testutil.ToFloat64(metrics.ActiveThreats))
}

func TestFeed_PrependsAndCaps(t *testing.T) {
	sim := newTestSimulator(t, 4, nil)
	fixed := time.Date(2024, 5, 15, 14, 23, 12, 0, time.UTC)
	sim.now = func() time.Time { return fixed }

	sim.Feed()
	first := sim.Snapshot().ActivityLog
	require.Len(t, first, 1)
	assert.Equal(t, "14:23:12", first[0].Time)
	assert.Contains(t, AttackMessages, first[0].Message)

	for i := 0; i < 10; i++ {
		sim.now = func() time.Time { return fixed.Add(time.Duration(i+1) * time.Second) }
		sim.Feed()
	}
	log := sim.Snapshot().ActivityLog
	require.Len(t, log, 5)
	assert.Equal(t, "14:23:22", log[0].Time, "newest entry comes first")
	assert.Equal(t, "14:23:18", log[4].Time)
}

func TestSnapshot_IsCopy(t *testing.T) {
	sim := newTestSimulator(t, 5, nil)
	sim.Feed()

	snap := sim.Snapshot()
	snap.ThreatVelocity[0].Value = 999
	snap.ActivityLog[0].Message = "tampered"

	fresh := sim.Snapshot()
	assert.Equal(t, 12, fresh.ThreatVelocity[0].Value)
	assert.NotEqual(t, "tampered", fresh.ActivityLog[0].Message)
}

func TestNewSimulator_Defaults(t *testing.T) {
	sim := NewSimulator(config.DashboardConfig{}, nil, nil, zap.NewNop())
	assert.Equal(t, 2*time.Second, sim.cfg.StatsInterval)
	assert.Equal(t, 3500*time.Millisecond, sim.cfg.FeedInterval)
	assert.Equal(t, 5, sim.cfg.FeedSize)
}

func TestRun_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.DashboardConfig{StatsInterval: time.Millisecond, FeedInterval: time.Millisecond, FeedSize: 3}
	sim := NewSimulator(cfg, rand.New(rand.NewSource(6)), nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(sim.Snapshot().ActivityLog) == 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.DashboardConfig{StatsInterval: time.Millisecond, FeedInterval: time.Millisecond}
	sim := NewSimulator(cfg, rand.New(rand.NewSource(7)), nil, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sim.Run(ctx)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				snap := sim.Snapshot()
				assert.LessOrEqual(t, len(snap.ActivityLog), 5)
			}
		}()
	}
	wg.Wait()
}

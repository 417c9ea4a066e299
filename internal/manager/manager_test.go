package manager

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/bots"
	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/core"
	"github.com/leozw/domain-scout/internal/monitor"
	"github.com/leozw/domain-scout/internal/portfolio"
	"github.com/leozw/domain-scout/internal/registrar"
)

type fakeChecker struct {
	available func(domain string) bool
	err       error
}

func (f *fakeChecker) CheckMultiple(_ context.Context, domains []string) ([]*core.AvailabilityResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]*core.AvailabilityResult, 0, len(domains))
	for _, d := range domains {
		results = append(results, &core.AvailabilityResult{
			Domain:    d,
			Available: f.available == nil || f.available(d),
			Registrar: "fake",
			Category:  core.CategoryStandard,
		})
	}
	return results, nil
}

func testMonitor() *monitor.Monitor {
	return monitor.New(config.MonitorConfig{
		MaxMemoryMB:       4096,
		MaxResponseTimeMs: 60000,
		MaxErrorRate:      1.0,
	}, zap.NewNop())
}

func newManager(t *testing.T, cfg config.BotsConfig, checker Checker, store portfolio.Store) *Manager {
	t.Helper()
	m, err := New(cfg, checker, store, testMonitor(), zap.NewNop())
	if err != nil {
		t.Fatalf("manager init failed: %v", err)
	}
	return m
}

func eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New(config.BotsConfig{Strategies: []string{"bogus"}}, &fakeChecker{}, portfolio.NewMemoryStore(), testMonitor(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestNew_BotsStartInactive(t *testing.T) {
	m := newManager(t, config.BotsConfig{Strategies: []string{"hidden", "nested"}}, &fakeChecker{}, portfolio.NewMemoryStore())

	for _, b := range m.Stats() {
		if b.Active {
			t.Fatalf("bot %s active before StartAllBots", b.Strategy)
		}
	}
	status := m.GetHealthStatus()
	if status.BotsActive != 0 || status.BotsTotal != 2 {
		t.Fatalf("active/total = %d/%d, want 0/2", status.BotsActive, status.BotsTotal)
	}
}

func TestSingleBotCycle_DemoRegistrar(t *testing.T) {
	client := registrar.NewClient(config.RegistrarConfig{Demo: true, MinIntervalMs: 1}, nil, zap.NewNop())
	store := portfolio.NewMemoryStore()
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"hidden"},
		ScheduleInterval: time.Hour, // only the immediate first cycle
	}, client, store)

	m.StartAllBots()
	defer m.StopAllBots()

	eventually(t, 2*time.Second, func() bool {
		return m.Stats()[0].Stats.DomainsScanned > 0
	})

	stats := m.Stats()[0].Stats
	if stats.DomainsScanned > bots.MaxCandidates {
		t.Fatalf("scanned %d, cap is %d", stats.DomainsScanned, bots.MaxCandidates)
	}
	if stats.DomainsDiscovered > stats.DomainsScanned {
		t.Fatalf("discovered %d > scanned %d", stats.DomainsDiscovered, stats.DomainsScanned)
	}

	status := m.GetHealthStatus()
	if status.BotsActive != 1 {
		t.Fatalf("bots active = %d, want 1", status.BotsActive)
	}

	entries, err := store.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if int64(len(entries)) != stats.DomainsAcquired {
		t.Fatalf("portfolio has %d entries, acquired counter says %d", len(entries), stats.DomainsAcquired)
	}
}

func TestStopAllBots_Idempotent(t *testing.T) {
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"nested"},
		ScheduleInterval: time.Hour,
	}, &fakeChecker{}, portfolio.NewMemoryStore())

	m.StartAllBots()
	m.StopAllBots()
	m.StopAllBots() // second stop is a no-op

	if m.Running() {
		t.Fatal("manager still running after stop")
	}
	for _, b := range m.Stats() {
		if b.Active {
			t.Fatalf("bot %s still active after stop", b.Strategy)
		}
	}
}

func TestStartAllBots_Idempotent(t *testing.T) {
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"unseen"},
		ScheduleInterval: time.Hour,
	}, &fakeChecker{}, portfolio.NewMemoryStore())

	m.StartAllBots()
	m.StartAllBots() // must not double-schedule
	defer m.StopAllBots()

	if got := m.GetHealthStatus().BotsActive; got != 1 {
		t.Fatalf("bots active = %d, want 1", got)
	}
}

func TestFailedCheck_CountsErrorAndScheduleContinues(t *testing.T) {
	checker := &fakeChecker{err: errors.New("provider unreachable")}
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"unfound"},
		ScheduleInterval: 20 * time.Millisecond,
	}, checker, portfolio.NewMemoryStore())

	m.StartAllBots()
	defer m.StopAllBots()

	// At least two failed cycles proves a failure does not stop the bot
	eventually(t, 2*time.Second, func() bool {
		return m.Stats()[0].Stats.Errors >= 2
	})

	stats := m.Stats()[0].Stats
	if stats.DomainsScanned == 0 {
		t.Fatal("scanned counter must advance even on failed checks")
	}
	if stats.DomainsDiscovered != 0 {
		t.Fatalf("discovered %d from failing checker", stats.DomainsDiscovered)
	}
}

// gatedChecker blocks each check until the gate is released, so tests
// can hold a cycle in flight across a lifecycle transition.
type gatedChecker struct {
	gate     chan struct{}
	inFlight chan struct{}
}

func (g *gatedChecker) CheckMultiple(_ context.Context, domains []string) ([]*core.AvailabilityResult, error) {
	select {
	case g.inFlight <- struct{}{}:
	default:
	}
	<-g.gate

	results := make([]*core.AvailabilityResult, 0, len(domains))
	for _, d := range domains {
		results = append(results, &core.AvailabilityResult{Domain: d})
	}
	return results, nil
}

func TestStartDuringStop_DoesNotStrandStop(t *testing.T) {
	checker := &gatedChecker{gate: make(chan struct{}), inFlight: make(chan struct{}, 1)}
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"hidden"},
		ScheduleInterval: time.Hour,
	}, checker, portfolio.NewMemoryStore())

	m.StartAllBots()
	<-checker.inFlight // first cycle is now held inside the check

	stopDone := make(chan struct{})
	go func() {
		m.StopAllBots()
		close(stopDone)
	}()

	startDone := make(chan struct{})
	go func() {
		m.StartAllBots()
		close(startDone)
	}()

	// Let both calls reach the lifecycle transition, then release the
	// in-flight cycle so the draining stop can finish
	time.Sleep(20 * time.Millisecond)
	close(checker.gate)

	select {
	case <-stopDone:
	case <-time.After(2 * time.Second):
		t.Fatal("StopAllBots stranded by concurrent StartAllBots")
	}
	select {
	case <-startDone:
	case <-time.After(2 * time.Second):
		t.Fatal("StartAllBots did not return")
	}

	// Whichever order won, the active flags must agree with Running()
	running := m.Running()
	for _, b := range m.Stats() {
		if b.Active != running {
			t.Fatalf("bot %s active=%v while manager running=%v", b.Strategy, b.Active, running)
		}
	}

	m.StopAllBots()
	if m.Running() {
		t.Fatal("manager still running after final stop")
	}
	for _, b := range m.Stats() {
		if b.Active {
			t.Fatalf("bot %s still active after final stop", b.Strategy)
		}
	}
}

// scannedTotal reads the per-strategy scan counter off the monitor's
// registry.
func scannedTotal(t *testing.T, mon *monitor.Monitor, strategy string) float64 {
	t.Helper()
	families, err := mon.Registry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "scout_domains_scanned_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "strategy" && label.GetValue() == strategy {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestFailedCycle_FeedsScanCounter(t *testing.T) {
	mon := testMonitor()
	checker := &fakeChecker{err: errors.New("provider unreachable")}
	m, err := New(config.BotsConfig{
		Strategies:       []string{"hidden"},
		ScheduleInterval: time.Hour,
	}, checker, portfolio.NewMemoryStore(), mon, zap.NewNop())
	if err != nil {
		t.Fatalf("manager init failed: %v", err)
	}

	m.StartAllBots()
	defer m.StopAllBots()

	eventually(t, 2*time.Second, func() bool {
		return scannedTotal(t, mon, "hidden") > 0
	})

	stats := m.Stats()[0].Stats
	if stats.Errors == 0 {
		t.Fatal("expected the failed cycle to be counted")
	}
	if got := scannedTotal(t, mon, "hidden"); got != float64(stats.DomainsScanned) {
		t.Fatalf("scan counter %v disagrees with stats %d after a failed cycle", got, stats.DomainsScanned)
	}
}

func TestDiscoveredForwardedToPortfolio(t *testing.T) {
	checker := &fakeChecker{available: func(domain string) bool {
		return len(domain)%2 == 0 // roughly half the batch
	}}
	store := portfolio.NewMemoryStore()
	m := newManager(t, config.BotsConfig{
		Strategies:       []string{"nested"},
		ScheduleInterval: time.Hour,
	}, checker, store)

	m.StartAllBots()
	defer m.StopAllBots()

	eventually(t, 2*time.Second, func() bool {
		return m.Stats()[0].Stats.DomainsScanned > 0
	})

	stats := m.Stats()[0].Stats
	entries, _ := store.ListDomains(context.Background())
	if int64(len(entries)) != stats.DomainsDiscovered {
		t.Fatalf("portfolio entries %d != discovered %d", len(entries), stats.DomainsDiscovered)
	}
	for _, e := range entries {
		if e.Strategy != "nested" || e.BotID == "" {
			t.Fatalf("entry missing bot attribution: %+v", e)
		}
	}
}

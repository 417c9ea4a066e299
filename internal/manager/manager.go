package manager

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/bots"
	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/core"
	"github.com/leozw/domain-scout/internal/monitor"
	"github.com/leozw/domain-scout/internal/portfolio"
)

// cycleTimeout bounds one generate-check-record cycle's outbound work,
// including the rate-limit wait.
const cycleTimeout = 30 * time.Second

// Checker is the slice of the registrar client a bot cycle needs.
type Checker interface {
	CheckMultiple(ctx context.Context, domains []string) ([]*core.AvailabilityResult, error)
}

type managedBot struct {
	id     string
	bot    bots.DomainBot
	active bool
	stats  core.BotStats
	stopCh chan struct{}
}

// Manager owns the bot set and their scheduling loops. Each active bot
// runs an independent periodic cycle; cycles for the same bot run in
// that bot's own goroutine and therefore never overlap.
type Manager struct {
	cfg       config.BotsConfig
	registrar Checker
	store     portfolio.Store
	monitor   *monitor.Monitor
	logger    *zap.Logger

	// lifecycleMu serializes whole start/stop transitions, including
	// the drain wait, so a restart can never interleave with a stop.
	lifecycleMu sync.Mutex

	mu      sync.RWMutex
	bots    []*managedBot
	running bool
	wg      sync.WaitGroup
}

// New constructs one inactive bot per configured strategy.
func New(cfg config.BotsConfig, registrar Checker, store portfolio.Store, mon *monitor.Monitor, logger *zap.Logger) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		registrar: registrar,
		store:     store,
		monitor:   mon,
		logger:    logger,
	}

	for _, strategy := range cfg.Strategies {
		bot, err := bots.New(strategy)
		if err != nil {
			return nil, err
		}
		m.bots = append(m.bots, &managedBot{
			id:  uuid.New().String(),
			bot: bot,
		})
	}

	return m, nil
}

// StartAllBots activates every bot and begins its periodic cycle. A
// second call while running is a no-op.
func (m *Manager) StartAllBots() {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	for _, b := range m.bots {
		b.active = true
		b.stopCh = make(chan struct{})
	}
	m.mu.Unlock()

	for _, b := range m.bots {
		m.wg.Add(1)
		go m.runBot(b, b.stopCh)
		m.logger.Info("Bot started",
			zap.String("bot_id", b.id),
			zap.String("strategy", b.bot.Strategy()),
		)
	}
}

// StopAllBots deactivates every bot. Idempotent. No new cycle starts
// after it returns; an in-flight cycle completes and is recorded first.
func (m *Manager) StopAllBots() {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	m.mu.RLock()
	running := m.running
	m.mu.RUnlock()
	if !running {
		return
	}

	// stopCh is only replaced under lifecycleMu, which we hold
	for _, b := range m.bots {
		close(b.stopCh)
	}
	m.wg.Wait()

	m.mu.Lock()
	m.running = false
	for _, b := range m.bots {
		b.active = false
	}
	m.mu.Unlock()

	m.logger.Info("All bots stopped")
}

// Running reports whether the scheduling loops are active.
func (m *Manager) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

func (m *Manager) runBot(b *managedBot, stop <-chan struct{}) {
	defer m.wg.Done()

	interval := m.cfg.ScheduleInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First cycle fires immediately, then on the interval
	m.runCycle(b)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.runCycle(b)
		}
	}
}

// runCycle is one generate-check-record pass. A failed check increments
// the bot's error counter and leaves the schedule untouched; the next
// tick proceeds regardless.
func (m *Manager) runCycle(b *managedBot) {
	start := time.Now()
	candidates := b.bot.GenerateCandidates()
	if len(candidates) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	results, err := m.registrar.CheckMultiple(ctx, candidates)
	cancel()

	elapsedMs := float64(time.Since(start).Milliseconds())

	if err != nil {
		m.mu.Lock()
		b.stats.DomainsScanned += int64(len(candidates))
		b.stats.Errors++
		m.mu.Unlock()

		m.monitor.RecordRequest(elapsedMs, true)
		m.monitor.RecordScan(b.bot.Strategy(), len(candidates), 0)
		m.logger.Warn("Bot check cycle failed",
			zap.String("bot_id", b.id),
			zap.String("strategy", b.bot.Strategy()),
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return
	}

	var discovered, acquired int64
	for _, result := range results {
		if !result.Available {
			continue
		}
		discovered++

		entry := &portfolio.Entry{
			ID:           uuid.New(),
			Domain:       result.Domain,
			BotID:        b.id,
			Strategy:     b.bot.Strategy(),
			Category:     result.Category,
			IsPremium:    result.IsPremium,
			PremiumPrice: result.PremiumPrice,
			Registrar:    result.Registrar,
			AcquiredAt:   time.Now(),
		}
		if err := m.store.AddAcquiredDomain(context.Background(), entry); err != nil {
			m.logger.Error("Failed to record acquired domain",
				zap.String("domain", result.Domain),
				zap.Error(err),
			)
			continue
		}
		acquired++
	}

	m.mu.Lock()
	b.stats.DomainsScanned += int64(len(candidates))
	b.stats.DomainsDiscovered += discovered
	b.stats.DomainsAcquired += acquired
	m.mu.Unlock()

	m.monitor.RecordRequest(elapsedMs, false)
	m.monitor.RecordScan(b.bot.Strategy(), len(candidates), int(discovered))

	m.logger.Debug("Bot cycle completed",
		zap.String("bot_id", b.id),
		zap.String("strategy", b.bot.Strategy()),
		zap.Int("scanned", len(candidates)),
		zap.Int64("discovered", discovered),
		zap.Duration("duration", time.Since(start)),
	)
}

// Stats returns a snapshot of every bot's state.
func (m *Manager) Stats() []core.BotStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.BotStatus, 0, len(m.bots))
	for _, b := range m.bots {
		out = append(out, core.BotStatus{
			ID:       b.id,
			Strategy: b.bot.Strategy(),
			Active:   b.active,
			Stats:    b.stats,
		})
	}
	return out
}

// GetHealthStatus aggregates bot state and the performance summary into
// the composite consumed by the health boundary.
func (m *Manager) GetHealthStatus() core.HealthStatus {
	botStatuses := m.Stats()

	active := 0
	for _, b := range botStatuses {
		if b.Active {
			active++
		}
	}

	summary := m.monitor.GetHealthSummary()

	return core.HealthStatus{
		Status:      summary.Status,
		Timestamp:   time.Now(),
		BotsActive:  active,
		BotsTotal:   len(botStatuses),
		Bots:        botStatuses,
		Performance: summary,
	}
}

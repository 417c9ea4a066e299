package monitor

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/core"
)

const (
	AlertHighMemory       = "high_memory"
	AlertHighResponseTime = "high_response_time"
	AlertHighErrorRate    = "high_error_rate"
	KindSlowRequest       = "slow_request"

	EventAlert   = "alert"
	EventCleared = "alert_cleared"
	EventNotice  = "notice"
)

// maxSamples caps the response-time window; rollover trims it further.
const (
	maxSamples      = 1000
	rolloverSamples = 100
)

// AlertEvent is one discrete alert transition or transient notice.
type AlertEvent struct {
	Kind      string    `json:"kind"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Monitor tracks process-wide rolling metrics and threshold alerts.
// One instance per process, created at startup and passed by reference
// into the scheduler and the HTTP handlers.
type Monitor struct {
	cfg    config.MonitorConfig
	logger *zap.Logger

	mu           sync.Mutex
	samples      []float64
	maxResponse  float64
	requestCount int64
	errorCount   int64
	alerts       map[string]bool

	subMu       sync.RWMutex
	subscribers map[chan AlertEvent]bool

	// heapMB is swappable so tests can steer the memory condition
	heapMB func() float64

	registry         *prometheus.Registry
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
	responseTime     prometheus.Histogram
	alertsActive     *prometheus.GaugeVec
	scansTotal       *prometheus.CounterVec
	discoveriesTotal *prometheus.CounterVec
}

func New(cfg config.MonitorConfig, logger *zap.Logger) *Monitor {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Monitor{
		cfg:         cfg,
		logger:      logger,
		alerts:      make(map[string]bool),
		subscribers: make(map[chan AlertEvent]bool),
		heapMB:      heapAllocMB,
		registry:    registry,
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "scout_requests_total",
			Help: "Total number of recorded requests",
		}),
		errorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "scout_request_errors_total",
			Help: "Total number of recorded request errors",
		}),
		responseTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scout_response_time_seconds",
			Help:    "Response time of recorded requests in seconds",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		alertsActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scout_alerts_active",
			Help: "Whether the alert kind is currently active (1) or not (0)",
		}, []string{"kind"}),
		scansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scout_domains_scanned_total",
			Help: "Total domains scanned per bot strategy",
		}, []string{"strategy"}),
		discoveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scout_domains_discovered_total",
			Help: "Total available domains discovered per bot strategy",
		}, []string{"strategy"}),
	}
}

func heapAllocMB() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.HeapAlloc) / 1024 / 1024
}

// Registry exposes the monitor's metrics for the scrape endpoint.
func (m *Monitor) Registry() *prometheus.Registry { return m.registry }

// Subscribe registers a new alert subscriber channel.
func (m *Monitor) Subscribe() chan AlertEvent {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	ch := make(chan AlertEvent, 16)
	m.subscribers[ch] = true
	return ch
}

func (m *Monitor) Unsubscribe(ch chan AlertEvent) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.subscribers[ch] {
		delete(m.subscribers, ch)
		close(ch)
	}
}

// publish delivers an event to every subscriber without ever blocking
// the monitor on a slow consumer.
func (m *Monitor) publish(event AlertEvent) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// RecordRequest appends one response-time sample and updates counters.
// A sample beyond twice the response-time threshold emits a transient
// slow-request notice, not a sticky alert.
func (m *Monitor) RecordRequest(responseTimeMs float64, isError bool) {
	m.mu.Lock()
	m.samples = append(m.samples, responseTimeMs)
	if len(m.samples) > maxSamples {
		m.samples = m.samples[len(m.samples)-maxSamples:]
	}
	if responseTimeMs > m.maxResponse {
		m.maxResponse = responseTimeMs
	}
	m.requestCount++
	if isError {
		m.errorCount++
	}
	slow := m.cfg.MaxResponseTimeMs > 0 && responseTimeMs > 2*m.cfg.MaxResponseTimeMs
	m.mu.Unlock()

	m.requestsTotal.Inc()
	if isError {
		m.errorsTotal.Inc()
	}
	m.responseTime.Observe(responseTimeMs / 1000)

	if slow {
		m.logger.Warn("Slow request recorded", zap.Float64("response_time_ms", responseTimeMs))
		m.publish(AlertEvent{
			Kind:      KindSlowRequest,
			Type:      EventNotice,
			Message:   "request exceeded twice the response-time threshold",
			Timestamp: time.Now(),
		})
	}
}

// RecordScan feeds the per-strategy scan counters.
func (m *Monitor) RecordScan(strategy string, scanned, discovered int) {
	m.scansTotal.WithLabelValues(strategy).Add(float64(scanned))
	m.discoveriesTotal.WithLabelValues(strategy).Add(float64(discovered))
}

// PerformHealthCheck evaluates the three threshold conditions and flips
// sticky alert flags on edge transitions only: one alert event when a
// threshold is first crossed, one cleared event when it recovers.
func (m *Monitor) PerformHealthCheck() {
	m.mu.Lock()
	avg := avgLocked(m.samples)
	var errorRate float64
	if m.requestCount > 0 {
		errorRate = float64(m.errorCount) / float64(m.requestCount)
	}
	m.mu.Unlock()

	m.evaluate(AlertHighMemory, m.heapMB() > m.cfg.MaxMemoryMB,
		"heap usage above configured limit")
	m.evaluate(AlertHighResponseTime, avg > m.cfg.MaxResponseTimeMs,
		"average response time above configured limit")
	m.evaluate(AlertHighErrorRate, errorRate > m.cfg.MaxErrorRate,
		"error rate above configured limit")
}

func (m *Monitor) evaluate(kind string, firing bool, message string) {
	m.mu.Lock()
	active := m.alerts[kind]
	transition := firing != active
	if transition {
		m.alerts[kind] = firing
	}
	m.mu.Unlock()

	if !transition {
		return
	}

	if firing {
		m.alertsActive.WithLabelValues(kind).Set(1)
		m.logger.Warn("Alert raised", zap.String("kind", kind))
		m.publish(AlertEvent{Kind: kind, Type: EventAlert, Message: message, Timestamp: time.Now()})
		return
	}
	m.alertsActive.WithLabelValues(kind).Set(0)
	m.logger.Info("Alert cleared", zap.String("kind", kind))
	m.publish(AlertEvent{Kind: kind, Type: EventCleared, Message: message, Timestamp: time.Now()})
}

// ClearOldMetrics truncates the sample window to the most recent entries
// and recomputes max/average from what is left. Cumulative request and
// error counters are all-time totals and are never reset.
func (m *Monitor) ClearOldMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) > rolloverSamples {
		m.samples = append([]float64(nil), m.samples[len(m.samples)-rolloverSamples:]...)
	}
	m.maxResponse = 0
	for _, s := range m.samples {
		if s > m.maxResponse {
			m.maxResponse = s
		}
	}
}

// GetHealthSummary derives the overall status from the sticky flags.
func (m *Monitor) GetHealthSummary() core.HealthSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := make([]string, 0, len(m.alerts))
	for kind, on := range m.alerts {
		if on {
			active = append(active, kind)
		}
	}
	sort.Strings(active)

	status := core.StateHealthy
	if len(active) > 0 {
		status = core.StateDegraded
	}

	return core.HealthSummary{
		Status:            status,
		ActiveAlerts:      active,
		RequestCount:      m.requestCount,
		ErrorCount:        m.errorCount,
		AvgResponseTimeMs: avgLocked(m.samples),
		MaxResponseTimeMs: m.maxResponse,
		MemoryMB:          m.heapMB(),
	}
}

// SampleCount reports the current window size.
func (m *Monitor) SampleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

// Start runs the periodic health check and the hourly metrics rollover
// until the context is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	healthInterval := m.cfg.HealthCheckInterval
	if healthInterval <= 0 {
		healthInterval = time.Minute
	}
	rolloverInterval := m.cfg.RolloverInterval
	if rolloverInterval <= 0 {
		rolloverInterval = time.Hour
	}

	healthTicker := time.NewTicker(healthInterval)
	defer healthTicker.Stop()
	rolloverTicker := time.NewTicker(rolloverInterval)
	defer rolloverTicker.Stop()

	m.logger.Info("Performance monitor started",
		zap.Duration("health_check_interval", healthInterval),
		zap.Duration("rollover_interval", rolloverInterval),
	)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Performance monitor stopped")
			return
		case <-healthTicker.C:
			m.PerformHealthCheck()
		case <-rolloverTicker.C:
			m.ClearOldMetrics()
		}
	}
}

func avgLocked(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

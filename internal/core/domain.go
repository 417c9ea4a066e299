package core

import "time"

type DomainCategory string

const (
	CategoryCrypto       DomainCategory = "crypto"
	CategoryAI           DomainCategory = "ai"
	CategoryWeb3         DomainCategory = "web3"
	CategoryGaming       DomainCategory = "gaming"
	CategoryFintech      DomainCategory = "fintech"
	CategoryPremiumShort DomainCategory = "premium-short"
	CategoryStandard     DomainCategory = "standard"
)

// AvailabilityResult is the registrar's answer for a single domain.
// Immutable once returned.
type AvailabilityResult struct {
	Domain       string         `json:"domain"`
	Available    bool           `json:"available"`
	IsPremium    bool           `json:"is_premium"`
	PremiumPrice int            `json:"premium_price,omitempty"`
	Registrar    string         `json:"registrar"`
	Category     DomainCategory `json:"category"`
}

// BotStats are cumulative per-bot counters. DomainsDiscovered never
// exceeds DomainsScanned.
type BotStats struct {
	DomainsScanned    int64 `json:"domains_scanned"`
	DomainsDiscovered int64 `json:"domains_discovered"`
	DomainsAcquired   int64 `json:"domains_acquired"`
	Errors            int64 `json:"errors"`
}

type BotStatus struct {
	ID       string   `json:"id"`
	Strategy string   `json:"strategy"`
	Active   bool     `json:"active"`
	Stats    BotStats `json:"stats"`
}

type HealthState string

const (
	StateHealthy  HealthState = "healthy"
	StateDegraded HealthState = "degraded"
)

// HealthSummary is the performance monitor's view of process health.
type HealthSummary struct {
	Status            HealthState `json:"status"`
	ActiveAlerts      []string    `json:"active_alerts"`
	RequestCount      int64       `json:"request_count"`
	ErrorCount        int64       `json:"error_count"`
	AvgResponseTimeMs float64     `json:"avg_response_time_ms"`
	MaxResponseTimeMs float64     `json:"max_response_time_ms"`
	MemoryMB          float64     `json:"memory_mb"`
}

// HealthStatus is the composite status surfaced on the health boundary.
type HealthStatus struct {
	Status      HealthState   `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	BotsActive  int           `json:"bots_active"`
	BotsTotal   int           `json:"bots_total"`
	Bots        []BotStatus   `json:"bots"`
	Performance HealthSummary `json:"performance"`
}

package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leozw/domain-scout/internal/core"
)

// Entry is one acquired (discovered-available) domain in the portfolio.
type Entry struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	Domain       string              `json:"domain" db:"domain"`
	BotID        string              `json:"bot_id" db:"bot_id"`
	Strategy     string              `json:"strategy" db:"strategy"`
	Category     core.DomainCategory `json:"category" db:"category"`
	IsPremium    bool                `json:"is_premium" db:"is_premium"`
	PremiumPrice int                 `json:"premium_price" db:"premium_price"`
	Registrar    string              `json:"registrar" db:"registrar"`
	AcquiredAt   time.Time           `json:"acquired_at" db:"acquired_at"`
}

// Store is the external portfolio collaborator. The core only appends
// entries and lists them; formatting and persistence live outside.
type Store interface {
	AddAcquiredDomain(ctx context.Context, entry *Entry) error
	ListDomains(ctx context.Context) ([]*Entry, error)
}

// MemoryStore is the default in-process Store, used when no database
// is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AddAcquiredDomain(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) ListDomains(_ context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

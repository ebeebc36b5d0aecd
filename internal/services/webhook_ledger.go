package services

import (
	"sync"
	"time"
)

// DefaultWebhookRetention bounds how long processed event IDs are kept.
// Provider redelivery happens within hours, so a day is past any retry
// schedule.
const DefaultWebhookRetention = 24 * time.Hour

// MemoryWebhookLedger is an in-process processed-event ledger with bounded
// retention. It backs deployments that run without a database.
type MemoryWebhookLedger struct {
	mutex     sync.Mutex
	seen      map[string]time.Time
	retention time.Duration
	now       func() time.Time
}

// NewMemoryWebhookLedger creates a ledger keeping event IDs for the given
// retention window. A non-positive retention uses the default.
func NewMemoryWebhookLedger(retention time.Duration) *MemoryWebhookLedger {
	if retention <= 0 {
		retention = DefaultWebhookRetention
	}

	ledger := &MemoryWebhookLedger{
		seen:      make(map[string]time.Time),
		retention: retention,
		now:       time.Now,
	}

	// Start cleanup goroutine
	go ledger.cleanup()

	return ledger
}

// MarkProcessed records the event ID and reports whether it was newly seen.
func (l *MemoryWebhookLedger) MarkProcessed(eventID string, eventType string) (bool, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	if at, exists := l.seen[eventID]; exists && now.Sub(at) < l.retention {
		return false, nil
	}

	l.seen[eventID] = now
	return true, nil
}

// cleanup removes expired entries periodically
func (l *MemoryWebhookLedger) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mutex.Lock()
		cutoff := l.now().Add(-l.retention)
		for id, at := range l.seen {
			if at.Before(cutoff) {
				delete(l.seen, id)
			}
		}
		l.mutex.Unlock()
	}
}

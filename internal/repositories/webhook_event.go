package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// WebhookEventRepository is the durable processed-event ledger. Event IDs
// are pruned past the retention window so the table stays bounded.
type WebhookEventRepository struct {
	db        *sql.DB
	retention time.Duration
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *sql.DB, retention time.Duration) *WebhookEventRepository {
	return &WebhookEventRepository{db: db, retention: retention}
}

// EnsureSchema creates the ledger table if it does not exist.
func (r *WebhookEventRepository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS processed_webhook_events (
			id          TEXT PRIMARY KEY,
			event_type  TEXT NOT NULL,
			received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create processed_webhook_events table: %w", err)
	}
	return nil
}

// MarkProcessed records the event ID and reports whether it was newly
// recorded. A conflict on the primary key means a redelivery.
func (r *WebhookEventRepository) MarkProcessed(eventID string, eventType string) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO processed_webhook_events (id, event_type)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`,
		eventID, eventType)
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	// Prune opportunistically so the ledger stays bounded without a
	// background job.
	if rows > 0 {
		r.prune()
	}

	return rows > 0, nil
}

func (r *WebhookEventRepository) prune() {
	cutoff := time.Now().Add(-r.retention)
	// Best effort; a failed prune only delays cleanup until the next insert.
	_, _ = r.db.Exec(`DELETE FROM processed_webhook_events WHERE received_at < $1`, cutoff)
}

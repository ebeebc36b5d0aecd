package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWebhookLedger_MarkProcessed(t *testing.T) {
	ledger := NewMemoryWebhookLedger(time.Hour)

	fresh, err := ledger.MarkProcessed("evt_1", "payment_intent.succeeded")
	require.NoError(t, err)
	assert.True(t, fresh, "first delivery should be fresh")

	// Redelivery of the same event
	fresh, err = ledger.MarkProcessed("evt_1", "payment_intent.succeeded")
	require.NoError(t, err)
	assert.False(t, fresh, "redelivery should be recognized")

	// A different event is unaffected
	fresh, err = ledger.MarkProcessed("evt_2", "payment_intent.payment_failed")
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestMemoryWebhookLedger_RetentionExpiry(t *testing.T) {
	ledger := NewMemoryWebhookLedger(time.Hour)

	current := time.Now()
	ledger.now = func() time.Time { return current }

	fresh, _ := ledger.MarkProcessed("evt_1", "payment_intent.succeeded")
	require.True(t, fresh)

	// Within retention the event is still a duplicate
	current = current.Add(30 * time.Minute)
	fresh, _ = ledger.MarkProcessed("evt_1", "payment_intent.succeeded")
	assert.False(t, fresh)

	// Past retention the ID may be reused; the provider never redelivers
	// that late, so treating it as fresh is the safe direction.
	current = current.Add(2 * time.Hour)
	fresh, _ = ledger.MarkProcessed("evt_1", "payment_intent.succeeded")
	assert.True(t, fresh)
}

func TestMemoryWebhookLedger_ConcurrentDeliveries(t *testing.T) {
	ledger := NewMemoryWebhookLedger(time.Hour)

	const workers = 16
	var wg sync.WaitGroup
	freshCount := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fresh, err := ledger.MarkProcessed("evt_contended", "payment_intent.succeeded")
			assert.NoError(t, err)
			freshCount <- fresh
		}()
	}
	wg.Wait()
	close(freshCount)

	seen := 0
	for fresh := range freshCount {
		if fresh {
			seen++
		}
	}
	assert.Equal(t, 1, seen, "exactly one delivery should win")
}

func TestMemoryWebhookLedger_DistinctEventsDoNotCollide(t *testing.T) {
	ledger := NewMemoryWebhookLedger(time.Hour)

	for i := 0; i < 100; i++ {
		fresh, err := ledger.MarkProcessed(fmt.Sprintf("evt_%d", i), "payment_intent.succeeded")
		require.NoError(t, err)
		assert.True(t, fresh)
	}
}

package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPLimiters_BurstExhaustion(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	limiters := newIPLimiters(rate.Every(time.Minute), 2)

	assert.True(t, limiters.allow("10.0.0.1", now))
	assert.True(t, limiters.allow("10.0.0.1", now))
	assert.False(t, limiters.allow("10.0.0.1", now))

	// Other clients have their own bucket.
	assert.True(t, limiters.allow("10.0.0.2", now))
}

func TestIPLimiters_EvictsIdleEntries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	limiters := newIPLimiters(rate.Every(time.Minute), 1)

	limiters.allow("10.0.0.1", now)
	limiters.allow("10.0.0.2", now)
	assert.Len(t, limiters.seen, 2)

	limiters.allow("10.0.0.3", now.Add(limiterIdleTTL+time.Minute))
	assert.Len(t, limiters.seen, 1)
}

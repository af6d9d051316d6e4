package api

import (
	"testing"
	"time"

	"wscmeso/mesocycle-planner/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiterEvictsIdleClients(t *testing.T) {
	l := newIPLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	first := l.get("10.0.0.1")
	l.get("10.0.0.2")
	assert.Len(t, l.limiters, 2)

	now = now.Add(5 * time.Minute)
	assert.Same(t, first, l.get("10.0.0.1"))

	now = now.Add(limiterIdleTTL)
	l.get("10.0.0.3")

	assert.Len(t, l.limiters, 1)
	assert.Contains(t, l.limiters, "10.0.0.3")
	assert.NotSame(t, first, l.get("10.0.0.1"))
}

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(window time.Duration) (*Keyed, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	k := New(window)
	k.now = func() time.Time { return now }
	return k, &now
}

func TestAllowDropsFastMessages(t *testing.T) {
	k, now := newTestLimiter(time.Second)

	assert.True(t, k.Allow("t1:c1"))
	assert.False(t, k.Allow("t1:c1"))

	*now = now.Add(500 * time.Millisecond)
	assert.False(t, k.Allow("t1:c1"))

	*now = now.Add(600 * time.Millisecond)
	assert.True(t, k.Allow("t1:c1"))
}

func TestAllowIsPerKey(t *testing.T) {
	k, _ := newTestLimiter(time.Second)

	assert.True(t, k.Allow("tenant-a:255700000001"))
	assert.True(t, k.Allow("tenant-b:255700000001"))
	assert.False(t, k.Allow("tenant-a:255700000001"))
}

func TestSweepAndForget(t *testing.T) {
	k, now := newTestLimiter(time.Second)

	k.Allow("old")
	*now = now.Add(2 * time.Hour)
	k.Allow("new")

	assert.Equal(t, 1, k.Sweep(time.Hour))
	assert.Equal(t, 1, k.Len())

	k.Forget("new")
	assert.Equal(t, 0, k.Len())
}

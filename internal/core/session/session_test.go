package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) (*MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	store, err := NewMemoryStore()
	require.NoError(t, err)
	return store.WithClock(clock.Now), clock
}

func TestGetCreatesIdleSession(t *testing.T) {
	store, clock := newStore(t)
	ctx := context.Background()
	key := Key{TenantID: "t1", CustomerID: "255700000001"}

	s, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State)
	assert.True(t, s.Draft.Empty())
	assert.Equal(t, clock.Now(), s.LastActivity)
	assert.Equal(t, 1, store.Len())

	clock.Advance(time.Minute)
	again, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), again.LastActivity)
	assert.Equal(t, 1, store.Len())
}

func TestGetRejectsEmptyKey(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Get(context.Background(), Key{TenantID: "t1"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestReturnedSessionIsACopy(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	key := Key{TenantID: "t1", CustomerID: "c1"}

	s, err := store.Get(ctx, key)
	require.NoError(t, err)
	s.State = StateMainMenu

	fresh, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, fresh.State, "unsaved mutation leaked into the store")
}

func TestTenantsAreIsolated(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	a := Key{TenantID: "tenant-a", CustomerID: "255711111111"}
	b := Key{TenantID: "tenant-b", CustomerID: "255711111111"}

	sb, err := store.Get(ctx, b)
	require.NoError(t, err)
	sb.State = StateSelectingPackage
	require.NoError(t, store.Save(ctx, sb))
	before, err := store.Get(ctx, b)
	require.NoError(t, err)

	sa, err := store.Get(ctx, a)
	require.NoError(t, err)
	sa.State = StateEnteringPartySize
	sa.Draft = Draft{OfferingID: "prison-island", Name: "Prison Island", Pricing: pricing.Table{{Bucket: "1", Price: 100}}}
	require.NoError(t, store.Save(ctx, sa))

	after, err := store.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Draft, after.Draft)

	reaped, err := store.ReapTenant(ctx, "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, []Key{a}, reaped)
	assert.Equal(t, 1, store.Len())
}

func TestSaveValidates(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	s := New(Key{TenantID: "t1", CustomerID: "c1"}, time.Now())
	s.State = StateEnteringDate
	assert.ErrorIs(t, store.Save(ctx, s), ErrInvalidSession)

	s.State = State("bogus")
	assert.ErrorIs(t, store.Save(ctx, s), ErrInvalidSession)

	s.State = StateEnteringDate
	s.Draft = Draft{OfferingID: "x"}
	s.Draft.SetPartySize(4, 60)
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, int64(240), s.Draft.TotalPrice)

	s.Draft.TotalPrice = 241
	assert.ErrorIs(t, store.Save(ctx, s), ErrInvalidSession)
}

func TestResetKeepsLanguage(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	key := Key{TenantID: "t1", CustomerID: "c1"}

	s, err := store.Get(ctx, key)
	require.NoError(t, err)
	s.State = StateEnteringPartySize
	s.Language = lang.Swahili
	s.LanguageSticky = true
	s.Draft = Draft{OfferingID: "spice", Name: "Spice Farm"}
	require.NoError(t, store.Save(ctx, s))

	require.NoError(t, store.Reset(ctx, key))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got.State)
	assert.True(t, got.Draft.Empty())
	assert.Equal(t, lang.Swahili, got.Language)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store, clock := newStore(t)
	ctx := context.Background()
	old := Key{TenantID: "t1", CustomerID: "old"}
	fresh := Key{TenantID: "t1", CustomerID: "fresh"}

	_, err := store.Get(ctx, old)
	require.NoError(t, err)
	clock.Advance(23 * time.Hour)
	_, err = store.Get(ctx, fresh)
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	swept, err := store.Sweep(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []Key{old}, swept)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentTenantsDoNotInterfere(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key{TenantID: string(rune('a' + i)), CustomerID: "same-customer"}
			s, err := store.Get(ctx, key)
			if !assert.NoError(t, err) {
				return
			}
			s.State = StateMainMenu
			assert.NoError(t, store.Save(ctx, s))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}

func TestCloneIsDeep(t *testing.T) {
	s := New(Key{TenantID: "t", CustomerID: "c"}, time.Now())
	s.Pickup = &Pickup{ID: "town", Zone: "stone_town"}
	s.Draft.Pricing = pricing.Table{{Bucket: "1", Price: 10}}

	c := s.Clone()
	c.Pickup.Zone = "north_south"
	c.Draft.Pricing[0].Price = 99

	assert.Equal(t, "stone_town", s.Pickup.Zone)
	assert.Equal(t, int64(10), s.Draft.Pricing[0].Price)
}

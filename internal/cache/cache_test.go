package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
)

// blockingFetch: fetch, который ждёт release и считает вызовы
type blockingFetch struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	value   func(call int32) any
}

func newBlockingFetch(value func(call int32) any) *blockingFetch {
	return &blockingFetch{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
		value:   value,
	}
}

func (b *blockingFetch) fn(context.Context) (any, error) {
	n := b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return b.value(n), nil
}

func waitLoading(t *testing.T, c *Cache, key string) {
	t.Helper()
	require.Eventually(t, func() bool { return c.IsLoading(key) }, time.Second, time.Millisecond)
}

// ── keys ────────────────────────────────────────────────────────────────────

func TestKeys(t *testing.T) {
	assert.Equal(t, "/api/auth/me", KeyCurrentUser)
	assert.Equal(t, "/api/sessions", KeySessions)
	assert.Equal(t, "/api/sessions/42", SessionKey(42))
}

// ── Read / Write ────────────────────────────────────────────────────────────

func TestReadAbsent(t *testing.T) {
	c := New(logger.Nop())

	_, ok := c.Read(KeySessions)
	assert.False(t, ok)
	assert.False(t, c.IsLoading(KeySessions))
}

func TestWriteThenRead(t *testing.T) {
	c := New(logger.Nop())

	c.Write(KeyCurrentUser, "alice")

	v, ok := c.Read(KeyCurrentUser)
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestFetchUsesFreshEntry(t *testing.T) {
	c := New(logger.Nop())
	c.Write(KeyCurrentUser, "seeded")

	v, err := c.Fetch(context.Background(), KeyCurrentUser, func(context.Context) (any, error) {
		t.Fatal("fetch must not run for a fresh entry")
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "seeded", v)
}

// ── Fetch dedupe ────────────────────────────────────────────────────────────

func TestConcurrentFetchSingleCall(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "sessions" })

	const readers = 10
	results := make(chan any, readers)
	var wg sync.WaitGroup
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), KeySessions, b.fn)
			assert.NoError(t, err)
			results <- v
		}()
	}

	<-b.started
	assert.True(t, c.IsLoading(KeySessions))
	close(b.release)
	wg.Wait()
	close(results)

	assert.Equal(t, int32(1), b.calls.Load(), "одновременные чтения дают один сетевой вызов")
	for v := range results {
		assert.Equal(t, "sessions", v)
	}
	assert.False(t, c.IsLoading(KeySessions))

	v, ok := c.Read(KeySessions)
	require.True(t, ok)
	assert.Equal(t, "sessions", v)
}

func TestFetchErrorNotStored(t *testing.T) {
	c := New(logger.Nop())

	_, err := c.Fetch(context.Background(), KeySessions, func(context.Context) (any, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, ok := c.Read(KeySessions)
	assert.False(t, ok)
	assert.False(t, c.IsLoading(KeySessions))

	v, err := c.Fetch(context.Background(), KeySessions, func(context.Context) (any, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestFetchCallerContextCancelled(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "late" })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, KeySessions, b.fn)
		errCh <- err
	}()

	<-b.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	// сам fetch не отменяется и сохраняет результат
	close(b.release)
	require.Eventually(t, func() bool {
		_, ok := c.Read(KeySessions)
		return ok
	}, time.Second, time.Millisecond)
}

// ── invalidation ────────────────────────────────────────────────────────────

func TestInvalidateMakesNextFetchGoToServer(t *testing.T) {
	c := New(logger.Nop())
	var calls atomic.Int32
	fetch := func(context.Context) (any, error) { return calls.Add(1), nil }

	_, err := c.Fetch(context.Background(), SessionKey(1), fetch)
	require.NoError(t, err)

	c.Invalidate(SessionKey(1))
	_, ok := c.Read(SessionKey(1))
	assert.False(t, ok, "после инвалидации чтение не отдаёт устаревшее значение")

	v, err := c.Fetch(context.Background(), SessionKey(1), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestInvalidateDuringFetchDiscardsResult(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(call int32) any { return call })

	first := make(chan any, 1)
	go func() {
		v, _ := c.Fetch(context.Background(), KeySessions, b.fn)
		first <- v
	}()
	<-b.started

	c.Invalidate(KeySessions)

	// новое чтение после инвалидации не присоединяется к старому запросу
	second := make(chan any, 1)
	go func() {
		v, _ := c.Fetch(context.Background(), KeySessions, b.fn)
		second <- v
	}()
	<-b.started
	assert.Equal(t, int32(2), b.calls.Load())

	close(b.release)
	assert.Equal(t, int32(1), <-first, "ожидающие старого запроса получают его результат")
	assert.Equal(t, int32(2), <-second)

	v, ok := c.Read(KeySessions)
	require.True(t, ok)
	assert.Equal(t, int32(2), v, "в кэше только результат после инвалидации")
}

func TestInvalidateWhileOnlyFetchInFlight(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "stale" })

	done := make(chan struct{})
	go func() {
		_, _ = c.Fetch(context.Background(), KeySessions, b.fn)
		close(done)
	}()
	<-b.started

	c.Invalidate(KeySessions)
	close(b.release)
	<-done

	_, ok := c.Read(KeySessions)
	assert.False(t, ok)
}

func TestWriteDuringFetchWins(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "fetched" })

	done := make(chan struct{})
	go func() {
		_, _ = c.Fetch(context.Background(), KeyCurrentUser, b.fn)
		close(done)
	}()
	<-b.started

	c.Write(KeyCurrentUser, "written")
	close(b.release)
	<-done

	v, ok := c.Read(KeyCurrentUser)
	require.True(t, ok)
	assert.Equal(t, "written", v)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(logger.Nop())
	c.Write(KeySessions, "list")
	c.Write(SessionKey(1), "one")
	c.Write(SessionKey(2), "two")
	c.Write(KeyCurrentUser, "me")

	c.InvalidatePrefix(KeySessions)

	for _, key := range []string{KeySessions, SessionKey(1), SessionKey(2)} {
		_, ok := c.Read(key)
		assert.False(t, ok, key)
	}
	_, ok := c.Read(KeyCurrentUser)
	assert.True(t, ok)
}

func TestInvalidatePrefixCoversLoadingKey(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "stale" })

	done := make(chan struct{})
	go func() {
		_, _ = c.Fetch(context.Background(), SessionKey(3), b.fn)
		close(done)
	}()
	<-b.started
	waitLoading(t, c, SessionKey(3))

	c.InvalidatePrefix(KeySessions)
	close(b.release)
	<-done

	_, ok := c.Read(SessionKey(3))
	assert.False(t, ok)
}

// ── Clear ───────────────────────────────────────────────────────────────────

func TestClearDropsEverything(t *testing.T) {
	c := New(logger.Nop())
	c.Write(KeyCurrentUser, "me")
	c.Write(KeySessions, "list")

	c.Clear()

	_, ok := c.Read(KeyCurrentUser)
	assert.False(t, ok)
	_, ok = c.Read(KeySessions)
	assert.False(t, ok)
}

func TestClearDuringFetchStoresNothing(t *testing.T) {
	c := New(logger.Nop())
	b := newBlockingFetch(func(int32) any { return "previous user data" })

	done := make(chan struct{})
	go func() {
		_, _ = c.Fetch(context.Background(), KeySessions, b.fn)
		close(done)
	}()
	<-b.started

	c.Clear()
	close(b.release)
	<-done

	_, ok := c.Read(KeySessions)
	assert.False(t, ok, "данные после выхода не должны воскресать")
}

// ── generic helpers ─────────────────────────────────────────────────────────

type session struct{ ID int64 }

func TestTypedFetchAndRead(t *testing.T) {
	c := New(logger.Nop())

	got, err := Fetch(context.Background(), c, KeySessions, func(context.Context) ([]session, error) {
		return []session{{ID: 1}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []session{{ID: 1}}, got)

	read, ok := Read[[]session](c, KeySessions)
	require.True(t, ok)
	assert.Equal(t, got, read)
}

func TestTypedFetchMismatch(t *testing.T) {
	c := New(logger.Nop())
	c.Write(KeySessions, "not a slice")

	_, err := Fetch(context.Background(), c, KeySessions, func(context.Context) ([]session, error) {
		return nil, errors.New("unreachable")
	})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, ok := Read[[]session](c, KeySessions)
	assert.False(t, ok)
}

func TestTypedFetchError(t *testing.T) {
	c := New(logger.Nop())

	_, err := Fetch(context.Background(), c, KeySessions, func(context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchCachesWithinStaleTime(t *testing.T) {
	cache := New(nil)
	var calls atomic.Int32
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "value", nil
	}
	opts := Options{StaleTime: time.Hour, Enabled: true}

	for i := 0; i < 3; i++ {
		data, err := cache.Fetch(context.Background(), "k", opts, fn)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if data != "value" {
			t.Fatalf("fetch %d: got %v", i, data)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 underlying call, got %d", got)
	}
}

func TestZeroStaleTimeAlwaysRefetches(t *testing.T) {
	cache := New(nil)
	var calls atomic.Int32
	fn := func(ctx context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}
	opts := Options{Enabled: true}

	if _, err := cache.Fetch(context.Background(), "k", opts, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	data, err := cache.Fetch(context.Background(), "k", opts, fn)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if data != 2 {
		t.Fatalf("expected second call result, got %v", data)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	cache := New(nil)
	var calls atomic.Int32
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "value", nil
	}
	opts := Options{StaleTime: time.Hour, Enabled: true}

	if _, err := cache.Fetch(context.Background(), "k", opts, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	cache.Invalidate("k")
	if _, err := cache.Fetch(context.Background(), "k", opts, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", got)
	}
}

func TestDisabledFetchReturnsCachedOnly(t *testing.T) {
	cache := New(nil)
	fn := func(ctx context.Context) (any, error) {
		t.Fatal("disabled fetch must not run")
		return nil, nil
	}

	_, err := cache.Fetch(context.Background(), "k", Options{}, fn)
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	cache.Write("k", "seed")
	data, err := cache.Fetch(context.Background(), "k", Options{}, fn)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if data != "seed" {
		t.Fatalf("expected cached seed, got %v", data)
	}
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	cache := New(nil)
	var calls atomic.Int32
	gate := make(chan struct{})
	started := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		close(started)
		<-gate
		return "value", nil
	}
	opts := Options{StaleTime: time.Hour, Enabled: true}

	var wg sync.WaitGroup
	results := make([]any, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = cache.Fetch(context.Background(), "k", opts, fn)
	}()

	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = cache.Fetch(context.Background(), "k", opts, func(ctx context.Context) (any, error) {
			t.Error("second fetch must join the first")
			return nil, nil
		})
	}()

	time.Sleep(10 * time.Millisecond)
	close(gate)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one underlying call, got %d", calls.Load())
	}
	if results[0] != "value" || results[1] != "value" {
		t.Fatalf("expected both fetches to see the value, got %v / %v", results[0], results[1])
	}
}

func TestCancelInFlightDoesNotClobberWrite(t *testing.T) {
	cache := New(nil)
	started := make(chan struct{})
	returned := make(chan struct{})
	opts := Options{Enabled: true}

	go func() {
		defer close(returned)
		_, _ = cache.Fetch(context.Background(), "k", opts, func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return "network", ctx.Err()
		})
	}()

	<-started
	cache.CancelInFlight("k")
	cache.Write("k", "optimistic")
	<-returned

	result := cache.Read("k")
	if result.Data != "optimistic" {
		t.Fatalf("expected optimistic write preserved, got %v", result.Data)
	}
	if result.Err != nil {
		t.Fatalf("expected no recorded error for canceled fetch, got %v", result.Err)
	}
}

func TestFetchErrorKeepsPreviousData(t *testing.T) {
	cache := New(nil)
	opts := Options{Enabled: true}

	if _, err := cache.Fetch(context.Background(), "k", opts, func(ctx context.Context) (any, error) {
		return "good", nil
	}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	boom := errors.New("boom")
	if _, err := cache.Fetch(context.Background(), "k", opts, func(ctx context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	result := cache.Read("k")
	if result.Data != "good" {
		t.Fatalf("expected previous data retained, got %v", result.Data)
	}
	if !errors.Is(result.Err, boom) {
		t.Fatalf("expected recorded error, got %v", result.Err)
	}
}

func TestDataTypedRead(t *testing.T) {
	cache := New(nil)
	cache.Write("k", []string{"a", "b"})

	values, ok := Data[[]string](cache, "k")
	if !ok || len(values) != 2 {
		t.Fatalf("expected typed read, got %v ok=%v", values, ok)
	}

	if _, ok := Data[int](cache, "k"); ok {
		t.Fatal("expected type mismatch to report !ok")
	}
	if _, ok := Data[[]string](cache, "missing"); ok {
		t.Fatal("expected missing key to report !ok")
	}
}

package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}

	results := Map(context.Background(), 2, items, func(_ context.Context, n int) (string, error) {
		// Reverse the natural completion order so collection has to sort.
		time.Sleep(time.Duration(50-n) * time.Millisecond)
		return fmt.Sprintf("v%d", n), nil
	})

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		want := fmt.Sprintf("v%d", items[i])
		if r.Value != want {
			t.Errorf("result %d = %q, want %q", i, r.Value, want)
		}
	}
}

func TestMapRespectsLimit(t *testing.T) {
	var inflight, peak int32

	items := make([]int, 20)
	Map(context.Background(), 4, items, func(_ context.Context, _ int) (struct{}, error) {
		cur := atomic.AddInt32(&inflight, 1)
		for {
			prev := atomic.LoadInt32(&peak)
			if cur <= prev || atomic.CompareAndSwapInt32(&peak, prev, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)
		return struct{}{}, nil
	})

	if got := atomic.LoadInt32(&peak); got > 4 {
		t.Errorf("observed %d concurrent tasks, limit was 4", got)
	}
}

func TestMapCollectsErrors(t *testing.T) {
	wantErr := errors.New("boom")

	results := Map(context.Background(), 3, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, wantErr
		}
		return n * n, nil
	})

	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, wantErr) {
		t.Fatalf("expected task error for item 2, got %v", results[1].Err)
	}
	if results[0].Value != 1 || results[2].Value != 9 {
		t.Errorf("unexpected values: %d, %d", results[0].Value, results[2].Value)
	}
}

func TestMapEmptyInput(t *testing.T) {
	results := Map(context.Background(), 3, nil, func(_ context.Context, _ int) (int, error) {
		t.Fatal("fn must not be called for empty input")
		return 0, nil
	})
	if results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestMapZeroLimit(t *testing.T) {
	results := Map(context.Background(), 0, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		return n + 1, nil
	})
	for i, r := range results {
		if r.Err != nil || r.Value != i+2 {
			t.Errorf("result %d = (%d, %v)", i, r.Value, r.Err)
		}
	}
}

package bulk

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestRunContinuesPastFailures(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var seen []int

	result := Run(context.Background(), "test", items, func(ctx context.Context, n int) (int, error) {
		seen = append(seen, n)
		if n == 3 {
			return 0, errBoom
		}
		return n * 10, nil
	}, Policy{})

	if len(seen) != 5 {
		t.Fatalf("expected every item to be attempted, saw %v", seen)
	}
	for i, n := range seen {
		if n != items[i] {
			t.Fatalf("items ran out of order: %v", seen)
		}
	}
	if result.Total != 5 || result.FailedCount != 1 || len(result.Succeeded) != 4 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Succeeded[2] != 40 {
		t.Fatalf("unexpected succeeded values %v", result.Succeeded)
	}

	err := result.Err()
	if !errors.Is(err, ErrPartialBatchFailure) {
		t.Fatalf("expected ErrPartialBatchFailure, got %v", err)
	}
	var pf *PartialFailureError
	if !errors.As(err, &pf) || pf.Failed != 1 || pf.Total != 5 {
		t.Fatalf("unexpected partial failure %+v", pf)
	}
}

func TestRunAllSucceeded(t *testing.T) {
	result := Run(context.Background(), "test", []string{"a", "b"}, func(ctx context.Context, s string) (string, error) {
		return s, nil
	}, Policy{})
	if err := result.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(result.Succeeded) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunEmpty(t *testing.T) {
	result := Run(context.Background(), "test", nil, func(ctx context.Context, n int) (int, error) {
		t.Fatal("op called for an empty batch")
		return 0, nil
	}, Policy{})
	if result.Total != 0 || result.Err() != nil || result.Succeeded == nil {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunRetries(t *testing.T) {
	attempts := map[int]int{}
	result := Run(context.Background(), "test", []int{1, 2}, func(ctx context.Context, n int) (int, error) {
		attempts[n]++
		if n == 1 && attempts[n] < 3 {
			return 0, errBoom
		}
		if n == 2 {
			return 0, errBoom
		}
		return n, nil
	}, Policy{Retries: 2, Backoff: time.Millisecond})

	if attempts[1] != 3 || attempts[2] != 3 {
		t.Fatalf("unexpected attempts %v", attempts)
	}
	if len(result.Succeeded) != 1 || result.FailedCount != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunPacesItems(t *testing.T) {
	const delay = 20 * time.Millisecond
	var starts []time.Time

	Run(context.Background(), "test", []int{1, 2, 3}, func(ctx context.Context, n int) (int, error) {
		starts = append(starts, time.Now())
		return n, nil
	}, Policy{Delay: delay})

	for i := 1; i < len(starts); i++ {
		// allow a little scheduler slack
		if gap := starts[i].Sub(starts[i-1]); gap < delay-5*time.Millisecond {
			t.Fatalf("items %d and %d started %v apart", i-1, i, gap)
		}
	}
}

func TestRunCancellationCountsRemainingAsFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := Run(ctx, "test", []int{1, 2, 3, 4}, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			cancel()
		}
		return n, nil
	}, Policy{})

	if len(result.Succeeded) != 2 || result.FailedCount != 2 || result.Total != 4 {
		t.Fatalf("unexpected result %+v", result)
	}
}

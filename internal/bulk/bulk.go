// Package bulk runs store operations over many items, one at a time, without
// letting a single failure abort the batch.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

var ErrPartialBatchFailure = errors.New("partial batch failure")

// PartialFailureError reports how many items of a batch failed.
type PartialFailureError struct {
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d items failed", e.Failed, e.Total)
}

func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialBatchFailure
}

// Result is the aggregate outcome of a batch.
type Result[R any] struct {
	Succeeded   []R `json:"succeeded"`
	FailedCount int `json:"failedCount"`
	Total       int `json:"total"`
}

// Err is nil when every item succeeded.
func (r Result[R]) Err() error {
	if r.FailedCount == 0 {
		return nil
	}
	return &PartialFailureError{Failed: r.FailedCount, Total: r.Total}
}

// Policy paces a batch against rate-limited backends.
type Policy struct {
	// Delay is the minimum spacing between the start of consecutive items.
	Delay time.Duration
	// Retries is the number of extra attempts per failing item.
	Retries int
	// Backoff is the wait before the first retry, doubled for each further
	// retry. Defaults to 100ms.
	Backoff time.Duration
}

const defaultBackoff = 100 * time.Millisecond

// Run applies op to items in order. Failed items are logged and counted.
// When ctx ends, the remaining items are counted as failed.
func Run[E, R any](ctx context.Context, name string, items []E, op func(context.Context, E) (R, error), policy Policy) Result[R] {
	result := Result[R]{Succeeded: make([]R, 0, len(items)), Total: len(items)}

	var limiter *rate.Limiter
	if policy.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(policy.Delay), 1)
	}

	for i, item := range items {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				result.FailedCount += len(items) - i
				slog.Error("bulk run interrupted", "batch", name, "remaining", len(items)-i, "error", err)
				break
			}
		} else if err := ctx.Err(); err != nil {
			result.FailedCount += len(items) - i
			slog.Error("bulk run interrupted", "batch", name, "remaining", len(items)-i, "error", err)
			break
		}

		out, err := attempt(ctx, item, op, policy)
		if err != nil {
			result.FailedCount++
			slog.Error("bulk item failed", "batch", name, "index", i, "error", err)
			continue
		}
		result.Succeeded = append(result.Succeeded, out)
	}

	if result.FailedCount > 0 {
		slog.Warn("bulk run finished with failures", "batch", name,
			"succeeded", len(result.Succeeded), "failed", result.FailedCount)
	}
	return result
}

func attempt[E, R any](ctx context.Context, item E, op func(context.Context, E) (R, error), policy Policy) (R, error) {
	backoff := policy.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	out, err := op(ctx, item)
	for retry := 0; err != nil && retry < policy.Retries; retry++ {
		timer := time.NewTimer(backoff << retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return out, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
		out, err = op(ctx, item)
	}
	return out, err
}

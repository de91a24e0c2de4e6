package testsupport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/store/local"
)

// LocalBackend opens a local backend in a temporary directory that is
// closed when the test ends.
func LocalBackend(t testing.TB) *local.Backend {
	t.Helper()
	b, err := local.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open local backend: %v", err)
	}
	t.Cleanup(func() {
		if err := b.Stores.Close(); err != nil {
			t.Errorf("close local backend: %v", err)
		}
	})
	return b
}

var ErrInjected = errors.New("injected failure")

// FlakyStore wraps an EntityStore and fails the calls its hooks select.
type FlakyStore[E any] struct {
	store.EntityStore[E]

	mu      sync.Mutex
	creates int
	// FailCreate receives the zero-based index of the create call.
	FailCreate func(n int, e E) bool
	FailUpdate func(e E) bool
}

func (s *FlakyStore[E]) Create(ctx context.Context, e E) (E, error) {
	s.mu.Lock()
	n := s.creates
	s.creates++
	s.mu.Unlock()

	if s.FailCreate != nil && s.FailCreate(n, e) {
		return e, ErrInjected
	}
	return s.EntityStore.Create(ctx, e)
}

func (s *FlakyStore[E]) Update(ctx context.Context, e E) (E, error) {
	if s.FailUpdate != nil && s.FailUpdate(e) {
		return e, ErrInjected
	}
	return s.EntityStore.Update(ctx, e)
}

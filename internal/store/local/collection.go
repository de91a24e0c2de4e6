package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/pkg/utils"
)

// Collection stores every record of one entity type as a JSON array under a
// single key. Read-modify-write cycles are serialized per collection.
type Collection[E store.Entity[E]] struct {
	kv   *KV
	key  string
	kind string
	// prepend puts new records first, the order the media library lists them.
	prepend bool

	mu sync.Mutex
}

func NewCollection[E store.Entity[E]](kv *KV, key, kind string) *Collection[E] {
	return &Collection[E]{kv: kv, key: key, kind: kind}
}

func (c *Collection[E]) List(ctx context.Context) ([]E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[E]) Create(ctx context.Context, e E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return e, err
	}

	if e.EntityID() == "" {
		id, err := utils.NewLocalID()
		if err != nil {
			return e, fmt.Errorf("generate %s id: %w", c.kind, err)
		}
		e = e.WithID(id)
	}

	if c.prepend {
		records = append([]E{e}, records...)
	} else {
		records = append(records, e)
	}
	if err := c.save(ctx, records); err != nil {
		return e, err
	}
	return e, nil
}

func (c *Collection[E]) Update(ctx context.Context, e E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return e, err
	}
	idx := indexOf(records, e.EntityID())
	if idx < 0 {
		return e, store.NotFound(c.kind, e.EntityID())
	}
	records[idx] = e
	if err := c.save(ctx, records); err != nil {
		return e, err
	}
	return e, nil
}

func (c *Collection[E]) Delete(ctx context.Context, id string) error {
	_, err := c.remove(ctx, id)
	return err
}

// remove deletes the record and returns it.
func (c *Collection[E]) remove(ctx context.Context, id string) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero E
	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return zero, store.NotFound(c.kind, id)
	}
	removed := records[idx]
	records = append(records[:idx], records[idx+1:]...)
	if err := c.save(ctx, records); err != nil {
		return zero, err
	}
	return removed, nil
}

// load reads the collection. Corrupt JSON is logged and read as empty so a
// damaged key never blocks the dashboard.
func (c *Collection[E]) load(ctx context.Context) ([]E, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	records := []E{}
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.Warn("discarding unreadable local collection",
			"key", Namespace+c.key,
			"error", fmt.Errorf("%w: %w", store.ErrMalformedLocalData, err))
		return []E{}, nil
	}
	return records, nil
}

func (c *Collection[E]) save(ctx context.Context, records []E) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", c.kind, err)
	}
	return c.kv.Put(ctx, c.key, string(data))
}

func indexOf[E store.Entity[E]](records []E, id string) int {
	for i, r := range records {
		if r.EntityID() == id {
			return i
		}
	}
	return -1
}

// Package testsupport provides in-memory backends for tests.
package testsupport

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/store/remote"
)

// MemGateway is a remote.Gateway over in-memory tables. Rows come back the
// way the database returns them: ids are UUIDs and created_at is set.
type MemGateway struct {
	mu     sync.Mutex
	tables map[string][]remote.Row

	// FailInsert, when set, is consulted before every insert.
	FailInsert func(table string, row remote.Row) error
	// Down makes every call fail as a transport error.
	Down bool
}

func NewMemGateway() *MemGateway {
	return &MemGateway{tables: make(map[string][]remote.Row)}
}

// Rows returns copies of every row of table, for any owner.
func (g *MemGateway) Rows(table string) []remote.Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]remote.Row, 0, len(g.tables[table]))
	for _, r := range g.tables[table] {
		out = append(out, maps.Clone(r))
	}
	return out
}

func (g *MemGateway) Select(ctx context.Context, table, userID, orderBy string) ([]remote.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Down {
		return nil, store.Unavailable("select "+table, errConnRefused)
	}

	var out []remote.Row
	for _, r := range g.tables[table] {
		if r["user_id"] == userID {
			out = append(out, maps.Clone(r))
		}
	}
	if strings.HasSuffix(orderBy, "DESC") {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (g *MemGateway) Insert(ctx context.Context, table string, row remote.Row) (remote.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Down {
		return nil, store.Unavailable("insert "+table, errConnRefused)
	}
	if g.FailInsert != nil {
		if err := g.FailInsert(table, row); err != nil {
			return nil, err
		}
	}

	stored := maps.Clone(row)
	stored["id"] = uuid.NewString()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = time.Now().UTC()
	}
	g.tables[table] = append(g.tables[table], stored)
	return maps.Clone(stored), nil
}

func (g *MemGateway) Update(ctx context.Context, table, userID, id string, row remote.Row) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Down {
		return false, store.Unavailable("update "+table, errConnRefused)
	}

	for i, r := range g.tables[table] {
		if r["id"] != id || r["user_id"] != userID {
			continue
		}
		updated := maps.Clone(r)
		for k, v := range row {
			if k == "id" || k == "user_id" {
				continue
			}
			updated[k] = v
		}
		g.tables[table][i] = updated
		return true, nil
	}
	return false, nil
}

func (g *MemGateway) Delete(ctx context.Context, table, userID, id string) (remote.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Down {
		return nil, store.Unavailable("delete "+table, errConnRefused)
	}

	rows := g.tables[table]
	for i, r := range rows {
		if r["id"] == id && r["user_id"] == userID {
			g.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return r, nil
		}
	}
	return nil, nil
}

var errConnRefused = fmt.Errorf("dial tcp: connection refused")

// MemObjects is a remote.ObjectStore over a map.
type MemObjects struct {
	mu      sync.Mutex
	objects map[string][]byte

	Base      string
	PutErr    error
	RemoveErr error
}

func NewMemObjects() *MemObjects {
	return &MemObjects{objects: make(map[string][]byte), Base: "https://media.example.test"}
}

func (o *MemObjects) Put(ctx context.Context, key string, data []byte, contentType string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.PutErr != nil {
		return o.PutErr
	}
	o.objects[key] = data
	return nil
}

func (o *MemObjects) Remove(ctx context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.RemoveErr != nil {
		return o.RemoveErr
	}
	delete(o.objects, key)
	return nil
}

func (o *MemObjects) PublicURL(key string) string {
	return o.Base + "/" + key
}

func (o *MemObjects) KeyFromURL(url string) (string, bool) {
	prefix := o.Base + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// Keys lists the stored object keys.
func (o *MemObjects) Keys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]string, 0, len(o.objects))
	for k := range o.objects {
		keys = append(keys, k)
	}
	return keys
}

// RemoteStores assembles remote stores over fresh in-memory fakes.
func RemoteStores() (*store.Stores, *MemGateway, *MemObjects) {
	gw := NewMemGateway()
	objects := NewMemObjects()
	return remote.New(gw, objects), gw, objects
}

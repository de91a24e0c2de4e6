package local

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const blobScheme = "blob:"

type blob struct {
	data        []byte
	contentType string
}

// BlobRegistry holds uploaded bytes for the lifetime of the process, the
// local counterpart of a browser object URL. References do not survive a
// restart.
type BlobRegistry struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewBlobRegistry() *BlobRegistry {
	return &BlobRegistry{blobs: make(map[string]blob)}
}

// Register stores data and returns its "blob:<uuid>" reference.
func (r *BlobRegistry) Register(data []byte, contentType string) string {
	ref := blobScheme + uuid.NewString()
	r.mu.Lock()
	r.blobs[ref] = blob{data: data, contentType: contentType}
	r.mu.Unlock()
	return ref
}

// Open returns the bytes behind ref. The "blob:" prefix is optional.
func (r *BlobRegistry) Open(ref string) ([]byte, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[normalizeRef(ref)]
	return b.data, b.contentType, ok
}

// Release drops ref; releasing an unknown reference is a no-op.
func (r *BlobRegistry) Release(ref string) {
	r.mu.Lock()
	delete(r.blobs, normalizeRef(ref))
	r.mu.Unlock()
}

func (r *BlobRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}

func normalizeRef(ref string) string {
	if strings.HasPrefix(ref, blobScheme) {
		return ref
	}
	return blobScheme + ref
}

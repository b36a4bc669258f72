package images

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/DibuBaj/Backend/cmd/identity/ids"
)

// MemoryStore keeps uploads in-process. Development mode and tests only.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore returns an empty in-memory image store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(ctx context.Context, r io.Reader, contentType string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if !AllowedContentType(contentType) {
		return Image{}, ErrUnsupportedType
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, err
	}
	id, err := ids.NewULID(time.Now().UTC())
	if err != nil {
		return Image{}, err
	}
	key := "mem/" + id + extensionFor(contentType)

	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return Image{ID: key, URL: fmt.Sprintf("memory://%s", key)}, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[id]; !ok {
		return ErrNotFound
	}
	delete(m.objects, id)
	return nil
}

// Len reports the number of stored objects. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

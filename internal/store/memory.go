// In-memory implementations of the DocumentStore and BlobStore ports.
//
// Memory backs the test suite and the BACKEND=memory local-development
// mode: it mirrors the observable semantics of the Firestore adapter
// (store-order listing, shallow merges, ErrNotFound, latest-only watch)
// without requiring GCP credentials.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process DocumentStore. Safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]memDoc
	watchers    map[string][]*memWatcher
}

type memDoc struct {
	id   string
	data map[string]any
}

type memWatcher struct {
	collection string
	orderField string
	ch         chan LatestEvent
}

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]memDoc),
		watchers:    make(map[string][]*memWatcher),
	}
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// List implements DocumentStore. Documents come back in insertion order.
func (m *Memory) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Document
	for _, d := range m.collections[collection] {
		if !matches(d.data, filters) {
			continue
		}
		out = append(out, Document{ID: d.id, Data: copyData(d.data)})
	}
	return out, nil
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if data[f.Field] != f.Value {
			return false
		}
	}
	return true
}

// Get implements DocumentStore.
func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.collections[collection] {
		if d.id == id {
			return Document{ID: d.id, Data: copyData(d.data)}, nil
		}
	}
	return Document{}, ErrNotFound
}

// Create implements DocumentStore.
func (m *Memory) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	id := uuid.NewString()
	m.collections[collection] = append(m.collections[collection], memDoc{id: id, data: copyData(data)})
	m.notifyLocked(collection)
	m.mu.Unlock()
	return id, nil
}

// Merge implements DocumentStore with shallow last-write-wins semantics.
func (m *Memory) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	for i := range docs {
		if docs[i].id != id {
			continue
		}
		for k, v := range data {
			docs[i].data[k] = v
		}
		m.notifyLocked(collection)
		return nil
	}
	return ErrNotFound
}

// Delete implements DocumentStore. Absent ids are ignored, matching the
// Firestore adapter.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	for i := range docs {
		if docs[i].id == id {
			m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			m.notifyLocked(collection)
			return nil
		}
	}
	return nil
}

// Latest implements DocumentStore.
func (m *Memory) Latest(ctx context.Context, collection, orderField string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := m.latestLocked(collection, orderField)
	if doc == nil {
		return Document{}, ErrNotFound
	}
	return *doc, nil
}

// latestLocked picks the document with the greatest orderField timestamp.
// Ties resolve to the later insertion, matching an append-only feed.
func (m *Memory) latestLocked(collection, orderField string) *Document {
	var (
		best   *memDoc
		bestAt time.Time
	)
	docs := m.collections[collection]
	for i := range docs {
		at, ok := docs[i].data[orderField].(time.Time)
		if !ok {
			continue
		}
		if best == nil || !at.Before(bestAt) {
			best = &docs[i]
			bestAt = at
		}
	}
	if best == nil {
		return nil
	}
	return &Document{ID: best.id, Data: copyData(best.data)}
}

// WatchLatest implements DocumentStore. The initial state is delivered
// immediately; afterwards each mutation of the collection emits the then
// current latest document. When the buffer is full the stalest queued
// event is dropped, since only the newest snapshot is authoritative.
func (m *Memory) WatchLatest(ctx context.Context, collection, orderField string) (<-chan LatestEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := &memWatcher{
		collection: collection,
		orderField: orderField,
		ch:         make(chan LatestEvent, 8),
	}

	m.mu.Lock()
	m.watchers[collection] = append(m.watchers[collection], w)
	w.push(LatestEvent{Doc: m.latestLocked(collection, orderField)})
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		ws := m.watchers[collection]
		for i := range ws {
			if ws[i] == w {
				m.watchers[collection] = append(ws[:i:i], ws[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		close(w.ch)
	}()
	return w.ch, nil
}

func (m *Memory) notifyLocked(collection string) {
	for _, w := range m.watchers[collection] {
		w.push(LatestEvent{Doc: m.latestLocked(collection, w.orderField)})
	}
}

func (w *memWatcher) push(ev LatestEvent) {
	for {
		select {
		case w.ch <- ev:
			return
		default:
			select {
			case <-w.ch: // make room by discarding the stalest snapshot
			default:
			}
		}
	}
}

// MemoryBlobs is an in-process BlobStore. Uploaded objects are retained in
// memory and addressed by a synthetic URL.
type MemoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryBlobs creates an empty in-memory blob store.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{objects: make(map[string][]byte)}
}

// Upload implements BlobStore.
func (b *MemoryBlobs) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	b.objects[path] = append([]byte(nil), data...)
	b.mu.Unlock()
	return "https://blobs.local/" + path, nil
}

// Object returns the stored bytes for a path and whether it exists.
func (b *MemoryBlobs) Object(path string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[path]
	return data, ok
}

// Len reports how many objects have been uploaded.
func (b *MemoryBlobs) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

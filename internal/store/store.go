// Package store defines the persistence ports of the application — a
// document store with equality-filtered queries, shallow merges, and a
// push subscription over the most recent entry of a time-ordered
// collection, plus a blob store that writes by path and resolves a
// fetchable URL.
//
// Two document-store implementations ship with the service:
//
//   - Firestore (firestore.go) backed by Cloud Firestore, with GCS
//     (gcs.go) as the blob store — the production pair.
//   - Memory (memory.go), an in-process implementation used by the test
//     suite and by local development without GCP credentials.
//
// Repositories depend only on the interfaces in this file.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in the
// addressed collection, or when Latest is called on an empty collection.
var ErrNotFound = errors.New("document not found")

// Document is one record of a collection: the store-assigned id plus the
// raw field map. Timestamps are carried as time.Time values.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter constrains List to documents whose field equals the given value.
type Filter struct {
	Field string
	Value any
}

// LatestEvent is one push notification from WatchLatest. Doc is nil when
// the watched collection holds no documents — an explicit empty state,
// distinct from an error.
type LatestEvent struct {
	Doc *Document
	Err error
}

// DocumentStore is the document database port. All operations are
// single-document or single-query; there is no cross-document transaction
// surface because the application does not rely on one.
type DocumentStore interface {
	// List returns the documents of a collection, optionally constrained by
	// field equality filters, in store order. An empty collection yields an
	// empty slice, not an error.
	List(ctx context.Context, collection string, filters ...Filter) ([]Document, error)

	// Get fetches a single document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Create writes a new document and returns its store-assigned id.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)

	// Merge shallow-merges data into an existing document, leaving fields
	// absent from data untouched. Missing documents yield ErrNotFound.
	Merge(ctx context.Context, collection, id string, data map[string]any) error

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Latest returns the single most recent document of a collection
	// ordered by the given timestamp field descending, or ErrNotFound when
	// the collection is empty.
	Latest(ctx context.Context, collection, orderField string) (Document, error)

	// WatchLatest subscribes to the single most recent document of the
	// collection. The returned channel delivers one LatestEvent per store
	// change, in store-emitted order, starting with the current state. The
	// subscription is released and the channel closed when ctx is
	// cancelled.
	WatchLatest(ctx context.Context, collection, orderField string) (<-chan LatestEvent, error)
}

// BlobStore is the object storage port used for attachment uploads.
type BlobStore interface {
	// Upload writes data at the given object path and returns a publicly
	// fetchable URL for it.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

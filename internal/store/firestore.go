// Cloud Firestore implementation of the DocumentStore port.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore adapts a Cloud Firestore client to the DocumentStore port.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates the Firestore adapter for the given project.
func NewFirestore(ctx context.Context, projectID string) (*Firestore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Close releases the underlying client connection.
func (s *Firestore) Close() error { return s.client.Close() }

// List implements DocumentStore.
func (s *Firestore) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	it := q.Documents(ctx)
	defer it.Stop()

	var out []Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		out = append(out, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
}

// Get implements DocumentStore.
func (s *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Create implements DocumentStore. The document id is assigned by
// Firestore.
func (s *Firestore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Merge implements DocumentStore using Firestore's MergeAll semantics:
// fields present in data overwrite, everything else stays.
func (s *Firestore) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	doc := s.client.Collection(collection).Doc(id)
	if _, err := doc.Get(ctx); status.Code(err) == codes.NotFound {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	if _, err := doc.Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements DocumentStore. Firestore deletes are idempotent, so an
// absent id is not an error.
func (s *Firestore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Latest implements DocumentStore via orderBy(orderField desc) limit 1.
func (s *Firestore) Latest(ctx context.Context, collection, orderField string) (Document, error) {
	it := s.client.Collection(collection).
		OrderBy(orderField, firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("latest of %s: %w", collection, err)
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// WatchLatest implements DocumentStore on top of Firestore's snapshot
// listener. The listener goroutine exits, stops the iterator, and closes
// the channel on ctx cancellation or on the first stream error.
func (s *Firestore) WatchLatest(ctx context.Context, collection, orderField string) (<-chan LatestEvent, error) {
	it := s.client.Collection(collection).
		OrderBy(orderField, firestore.Desc).
		Limit(1).
		Snapshots(ctx)

	ch := make(chan LatestEvent, 1)
	go func() {
		defer close(ch)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				select {
				case ch <- LatestEvent{Err: fmt.Errorf("watch %s: %w", collection, err)}:
				case <-ctx.Done():
				}
				return
			}

			var doc *Document
			snap, err := qs.Documents.Next()
			if err == nil {
				doc = &Document{ID: snap.Ref.ID, Data: snap.Data()}
			} else if err != iterator.Done {
				select {
				case ch <- LatestEvent{Err: fmt.Errorf("watch %s: %w", collection, err)}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case ch <- LatestEvent{Doc: doc}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

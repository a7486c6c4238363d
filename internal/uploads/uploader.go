// Package uploads converts inline attachment payloads into durable blob
// storage objects and returns their stable URLs.
//
// The uploader owns the two hard rules of attachment handling:
//
//   - Idempotence: an attachment that is already a stored reference is
//     passed through untouched — re-submitting an unchanged form never
//     re-uploads a blob.
//   - Degradation: a failed upload is logged once and degrades to "no
//     attachment" instead of failing the surrounding record write. The
//     record is persisted without the reference; the caller proceeds.
//
// Object paths are namespaced per owning entity so repeated uploads for
// the same entity never collide:
//
//	<entity-type>/<phone-or-id>/<field>-<unixnano>
package uploads

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// Uploader resolves domain attachments against a blob store.
type Uploader struct {
	blobs store.BlobStore
	log   zerolog.Logger
	now   func() time.Time
}

// New constructs an Uploader writing through the given blob store.
func New(blobs store.BlobStore, log zerolog.Logger) *Uploader {
	return &Uploader{blobs: blobs, log: log, now: time.Now}
}

// Resolve turns an attachment into a storage URL.
//
//	Empty   -> "" with no side effect
//	Stored  -> the same URL, with no blob write
//	Pending -> uploaded at the namespaced path, public URL returned
//
// Blob-store failures degrade to "": the caller must treat an empty
// reference as "no attachment" and continue. The failed payload is dropped,
// not retried.
func (u *Uploader) Resolve(ctx context.Context, entityType, owner, field string, att domain.Attachment) string {
	switch att.Kind() {
	case domain.AttachmentEmpty:
		return ""
	case domain.AttachmentStored:
		return att.URL()
	}

	if owner == "" {
		owner = "unassigned"
	}
	path := fmt.Sprintf("%s/%s/%s-%d", entityType, owner, field, u.now().UnixNano())
	url, err := u.blobs.Upload(ctx, path, att.Bytes(), att.MIME())
	if err != nil {
		u.log.Error().
			Err(err).
			Str("path", path).
			Str("field", field).
			Msg("attachment upload failed, storing record without reference")
		return ""
	}
	return url
}

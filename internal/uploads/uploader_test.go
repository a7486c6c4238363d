package uploads

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

type failingBlobs struct{ calls int }

func (f *failingBlobs) Upload(context.Context, string, []byte, string) (string, error) {
	f.calls++
	return "", errors.New("bucket unavailable")
}

func TestResolve_Empty(t *testing.T) {
	blobs := store.NewMemoryBlobs()
	u := New(blobs, zerolog.Nop())

	if got := u.Resolve(context.Background(), "dealer", "9999999999", "logo", domain.Attachment{}); got != "" {
		t.Fatalf("empty attachment resolved to %q, want \"\"", got)
	}
	if blobs.Len() != 0 {
		t.Fatalf("empty attachment must not touch the blob store")
	}
}

func TestResolve_StoredPassesThrough(t *testing.T) {
	blobs := store.NewMemoryBlobs()
	u := New(blobs, zerolog.Nop())

	const url = "https://storage.googleapis.com/b/dealer/9999999999/logo-7"
	got := u.Resolve(context.Background(), "dealer", "9999999999", "logo", domain.StoredAttachment(url))
	if got != url {
		t.Fatalf("stored attachment resolved to %q, want %q", got, url)
	}
	if blobs.Len() != 0 {
		t.Fatalf("re-submitted url must not re-upload; %d objects written", blobs.Len())
	}
}

func TestResolve_PendingUploadsAtNamespacedPath(t *testing.T) {
	blobs := store.NewMemoryBlobs()
	u := New(blobs, zerolog.Nop())
	at := time.Date(2025, 5, 1, 10, 0, 0, 12345, time.UTC)
	u.now = func() time.Time { return at }

	got := u.Resolve(context.Background(), "dealer", "9999999999", "logo",
		domain.PendingAttachment([]byte("img"), "image/png"))

	wantPath := "dealer/9999999999/logo-" + strconv.FormatInt(at.UnixNano(), 10)
	if got != "https://blobs.local/"+wantPath {
		t.Fatalf("url = %q, want suffix %q", got, wantPath)
	}
	data, ok := blobs.Object(wantPath)
	if !ok || string(data) != "img" {
		t.Fatalf("object at %q = %q (ok=%v)", wantPath, data, ok)
	}
}

func TestResolve_OwnerlessFallsBackToUnassigned(t *testing.T) {
	blobs := store.NewMemoryBlobs()
	u := New(blobs, zerolog.Nop())

	got := u.Resolve(context.Background(), "reward", "", "image",
		domain.PendingAttachment([]byte("x"), "image/jpeg"))
	if !strings.Contains(got, "/reward/unassigned/image-") {
		t.Fatalf("url = %q, want unassigned namespace", got)
	}
}

func TestResolve_UploadFailureDegradesToEmpty(t *testing.T) {
	blobs := &failingBlobs{}
	u := New(blobs, zerolog.Nop())

	got := u.Resolve(context.Background(), "dealer", "9999999999", "logo",
		domain.PendingAttachment([]byte("img"), "image/png"))
	if got != "" {
		t.Fatalf("failed upload resolved to %q, want \"\"", got)
	}
	if blobs.calls != 1 {
		t.Fatalf("upload attempted %d times, want exactly 1 (no retry)", blobs.calls)
	}
}

// Attachment variant type.
//
// A file field on an API payload can arrive in three shapes: absent, an
// inline base64 data URI freshly picked in a form, or the URL of a blob
// that was uploaded earlier and is being re-submitted unchanged. Instead of
// letting every caller sniff string prefixes, the shape is decided exactly
// once, here, and carried as a tagged value:
//
//	Empty            no attachment
//	Pending(bytes)   decoded inline payload awaiting upload
//	Stored(url)      resolved, fetchable storage reference
//
// The uploads package consumes Pending values; everything else only ever
// sees Stored URLs or Empty.
package domain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBadAttachment is returned when an attachment payload is neither empty,
// a base64 data URI, nor an http(s) URL.
var ErrBadAttachment = errors.New("attachment is neither a data URI nor a URL")

// AttachmentKind tags the three states an Attachment can be in.
type AttachmentKind uint8

const (
	// AttachmentEmpty means no attachment was supplied.
	AttachmentEmpty AttachmentKind = iota
	// AttachmentPending holds decoded inline bytes not yet uploaded.
	AttachmentPending
	// AttachmentStored holds a resolved storage URL.
	AttachmentStored
)

// Attachment is the tagged variant described in the package comment for
// this file. The zero value is Empty.
type Attachment struct {
	kind AttachmentKind
	url  string
	mime string
	data []byte
}

// PendingAttachment builds an attachment awaiting upload.
func PendingAttachment(data []byte, mime string) Attachment {
	return Attachment{kind: AttachmentPending, data: data, mime: mime}
}

// StoredAttachment builds an attachment that already resolves to a URL.
func StoredAttachment(url string) Attachment {
	return Attachment{kind: AttachmentStored, url: url}
}

// ParseAttachment classifies a raw string payload. Accepted forms:
//
//	""                                    -> Empty
//	data:<mime>;base64,<payload>          -> Pending (payload decoded)
//	http://... | https://...              -> Stored
//
// Anything else is rejected with ErrBadAttachment. This is the only place
// in the codebase that inspects the wire shape of an attachment.
func ParseAttachment(s string) (Attachment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Attachment{}, nil
	}
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return Attachment{}, fmt.Errorf("%w: malformed data URI", ErrBadAttachment)
		}
		mime, ok := strings.CutSuffix(meta, ";base64")
		if !ok {
			return Attachment{}, fmt.Errorf("%w: data URI is not base64-encoded", ErrBadAttachment)
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Attachment{}, fmt.Errorf("%w: %v", ErrBadAttachment, err)
		}
		return PendingAttachment(raw, mime), nil
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return StoredAttachment(s), nil
	}
	return Attachment{}, ErrBadAttachment
}

// Kind returns the variant tag.
func (a Attachment) Kind() AttachmentKind { return a.kind }

// IsZero reports whether no attachment was supplied.
func (a Attachment) IsZero() bool { return a.kind == AttachmentEmpty }

// URL returns the resolved reference of a Stored attachment, or "".
func (a Attachment) URL() string { return a.url }

// Bytes returns the decoded payload of a Pending attachment, or nil.
func (a Attachment) Bytes() []byte { return a.data }

// MIME returns the declared content type of a Pending attachment, or "".
func (a Attachment) MIME() string { return a.mime }

// UnmarshalJSON accepts null or a string in any of the ParseAttachment
// forms, so request DTOs can declare Attachment fields directly.
func (a *Attachment) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Attachment{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAttachment(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON renders Stored attachments as their URL and everything else
// as null. Pending payloads are transient and never serialized back out.
func (a Attachment) MarshalJSON() ([]byte, error) {
	if a.kind == AttachmentStored {
		return json.Marshal(a.url)
	}
	return []byte("null"), nil
}

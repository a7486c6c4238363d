// Partner repository over the shared "users" collection. Dealers and
// influencers live side by side, discriminated by the "role" field.
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
	"github.com/dealerhub/dealerhub-backend/internal/uploads"
)

// PartnerRepo persists partner records and resolves their attachments.
type PartnerRepo struct {
	store   store.DocumentStore
	uploads *uploads.Uploader
	log     zerolog.Logger
	now     func() time.Time
}

// NewPartnerRepo constructs a PartnerRepo.
func NewPartnerRepo(s store.DocumentStore, u *uploads.Uploader, log zerolog.Logger) *PartnerRepo {
	return &PartnerRepo{store: s, uploads: u, log: log, now: time.Now}
}

// List returns partners, optionally constrained to one role. An empty
// collection yields an empty slice.
func (r *PartnerRepo) List(ctx context.Context, role domain.Role) ([]domain.Partner, error) {
	var filters []store.Filter
	if role != "" {
		filters = append(filters, store.Filter{Field: "role", Value: string(role)})
	}
	docs, err := r.store.List(ctx, colUsers, filters...)
	if err != nil {
		r.log.Error().Err(err).Str("role", string(role)).Msg("list partners")
		return nil, err
	}
	out := make([]domain.Partner, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodePartner(d))
	}
	return out, nil
}

// Get fetches one partner or store.ErrNotFound.
func (r *PartnerRepo) Get(ctx context.Context, id string) (*domain.Partner, error) {
	doc, err := r.store.Get(ctx, colUsers, id)
	if err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("get partner")
		}
		return nil, err
	}
	p := decodePartner(doc)
	return &p, nil
}

// Create resolves every attachment field, then writes the record with the
// fixed role, status "pending", and a fresh creation timestamp. The
// persisted document holds resolved URLs only — inline payloads are never
// written. Returns the store-assigned id.
func (r *PartnerRepo) Create(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error) {
	owner := in.PhoneNumber
	doc := map[string]any{
		"role":          string(role),
		"status":        string(domain.StatusPending),
		"createdAt":     r.now(),
		"name":          in.Name,
		"firmName":      in.FirmName,
		"email":         in.Email,
		"phoneNumber":   in.PhoneNumber,
		"address":       in.Address,
		"city":          in.City,
		"state":         in.State,
		"pincode":       in.Pincode,
		"gstNumber":     in.GSTNumber,
		"panNumber":     in.PANNumber,
		"aadhaarNumber": in.AadhaarNumber,

		// Uploads complete (or degrade) before the document write below.
		"logoUrl":        ref(r.uploads.Resolve(ctx, string(role), owner, "logo", in.Logo)),
		"gstDocUrl":      ref(r.uploads.Resolve(ctx, string(role), owner, "gst", in.GSTDoc)),
		"panCardUrl":     ref(r.uploads.Resolve(ctx, string(role), owner, "pan", in.PANCard)),
		"aadhaarCardUrl": ref(r.uploads.Resolve(ctx, string(role), owner, "aadhaar", in.AadhaarCard)),
	}

	id, err := r.store.Create(ctx, colUsers, doc)
	if err != nil {
		r.log.Error().Err(err).Str("role", string(role)).Msg("create partner")
		return "", err
	}
	return id, nil
}

// Update shallow-merges the non-nil fields of upd into the stored
// document; absent fields keep their prior values. Attachments that are
// already stored references pass through without a re-upload; inline
// payloads are uploaded under the partner id.
func (r *PartnerRepo) Update(ctx context.Context, id string, upd domain.PartnerUpdate) error {
	fields := map[string]any{}
	setString(fields, "name", upd.Name)
	setString(fields, "firmName", upd.FirmName)
	setString(fields, "email", upd.Email)
	setString(fields, "phoneNumber", upd.PhoneNumber)
	setString(fields, "address", upd.Address)
	setString(fields, "city", upd.City)
	setString(fields, "state", upd.State)
	setString(fields, "pincode", upd.Pincode)
	setString(fields, "gstNumber", upd.GSTNumber)
	setString(fields, "panNumber", upd.PANNumber)
	setString(fields, "aadhaarNumber", upd.AadhaarNumber)
	if upd.Status != nil {
		fields["status"] = string(*upd.Status)
	}

	r.setAttachment(ctx, fields, id, "logoUrl", "logo", upd.Logo)
	r.setAttachment(ctx, fields, id, "gstDocUrl", "gst", upd.GSTDoc)
	r.setAttachment(ctx, fields, id, "panCardUrl", "pan", upd.PANCard)
	r.setAttachment(ctx, fields, id, "aadhaarCardUrl", "aadhaar", upd.AadhaarCard)

	if len(fields) == 0 {
		return nil
	}
	if err := r.store.Merge(ctx, colUsers, id, fields); err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("update partner")
		}
		return err
	}
	return nil
}

// Delete removes the partner document. Orders placed by the partner and
// blobs uploaded for it are not cascaded.
func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, colUsers, id); err != nil {
		r.log.Error().Err(err).Str("id", id).Msg("delete partner")
		return err
	}
	return nil
}

func (r *PartnerRepo) setAttachment(ctx context.Context, fields map[string]any, id, key, field string, att *domain.Attachment) {
	if att == nil {
		return
	}
	fields[key] = ref(r.uploads.Resolve(ctx, "partner", id, field, *att))
}

func setString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func decodePartner(d store.Document) domain.Partner {
	return domain.Partner{
		ID:             d.ID,
		Role:           domain.Role(docString(d.Data, "role")),
		Status:         domain.Status(docString(d.Data, "status")),
		Name:           docString(d.Data, "name"),
		FirmName:       docString(d.Data, "firmName"),
		Email:          docString(d.Data, "email"),
		PhoneNumber:    docString(d.Data, "phoneNumber"),
		Address:        docString(d.Data, "address"),
		City:           docString(d.Data, "city"),
		State:          docString(d.Data, "state"),
		Pincode:        docString(d.Data, "pincode"),
		GSTNumber:      docString(d.Data, "gstNumber"),
		PANNumber:      docString(d.Data, "panNumber"),
		AadhaarNumber:  docString(d.Data, "aadhaarNumber"),
		LogoURL:        docString(d.Data, "logoUrl"),
		GSTDocURL:      docString(d.Data, "gstDocUrl"),
		PANCardURL:     docString(d.Data, "panCardUrl"),
		AadhaarCardURL: docString(d.Data, "aadhaarCardUrl"),
		CreatedAt:      docTime(d.Data, "createdAt"),
	}
}

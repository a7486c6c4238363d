// Package services – PartnerService
//
// Manages dealer and influencer records: validates create/update input,
// applies the list-view filter server-side, and maps store errors to
// service errors. Attachment resolution is the repository's job; by the
// time a record is persisted every file field is a URL or null.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// PartnerStore is the repository contract required by PartnerService.
type PartnerStore interface {
	List(ctx context.Context, role domain.Role) ([]domain.Partner, error)
	Get(ctx context.Context, id string) (*domain.Partner, error)
	Create(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error)
	Update(ctx context.Context, id string, upd domain.PartnerUpdate) error
	Delete(ctx context.Context, id string) error
}

// PartnerService provides partner-level operations for both roles.
type PartnerService struct {
	Repo PartnerStore
}

// NewPartnerService constructs a PartnerService.
func NewPartnerService(r PartnerStore) *PartnerService {
	return &PartnerService{Repo: r}
}

// phoneRE matches the 10-digit subscriber numbers partner records carry.
var phoneRE = regexp.MustCompile(`^[0-9]{10}$`)

// List returns the partners of one role narrowed by the view filter. The
// filter runs client-side over the full fetched set, so re-filtering does
// not re-query the store.
func (s *PartnerService) List(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error) {
	all, err := s.Repo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return listview.Visible(all, f, func(p domain.Partner) listview.Entry {
		return listview.Entry{CreatedAt: p.CreatedAt, Status: string(p.Status), Name: p.Name}
	}), nil
}

// Get fetches one partner.
func (s *PartnerService) Get(ctx context.Context, id string) (*domain.Partner, error) {
	p, err := s.Repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPartnerNotFound
	}
	return p, err
}

// Create validates and persists a new partner of the given role. The
// repository stamps status pending and the creation timestamp.
func (s *PartnerService) Create(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Name == "" {
		return "", ErrMissingName
	}
	if !phoneRE.MatchString(in.PhoneNumber) {
		return "", ErrInvalidPhone
	}
	return s.Repo.Create(ctx, role, in)
}

// Update applies a partial update. Fields absent from upd keep their
// stored values.
func (s *PartnerService) Update(ctx context.Context, id string, upd domain.PartnerUpdate) error {
	if upd.Status != nil && !upd.Status.Valid() {
		return ErrInvalidStatus
	}
	if upd.PhoneNumber != nil && !phoneRE.MatchString(*upd.PhoneNumber) {
		return ErrInvalidPhone
	}
	err := s.Repo.Update(ctx, id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPartnerNotFound
	}
	return err
}

// Delete removes a partner record. Dependent orders and uploaded blobs
// are not cascaded.
func (s *PartnerService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Admin repository over the "admins" collection, consumed only by the
// auth service.
package repo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// AdminRepo looks up staff accounts.
type AdminRepo struct {
	store store.DocumentStore
	log   zerolog.Logger
}

// NewAdminRepo constructs an AdminRepo.
func NewAdminRepo(s store.DocumentStore, log zerolog.Logger) *AdminRepo {
	return &AdminRepo{store: s, log: log}
}

// FindByEmail returns the admin registered under email, or
// store.ErrNotFound.
func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	docs, err := r.store.List(ctx, colAdmins, store.Filter{Field: "email", Value: email})
	if err != nil {
		r.log.Error().Err(err).Msg("find admin")
		return nil, err
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	d := docs[0]
	return &domain.Admin{
		ID:           d.ID,
		Email:        docString(d.Data, "email"),
		Name:         docString(d.Data, "name"),
		PasswordHash: docString(d.Data, "passwordHash"),
	}, nil
}

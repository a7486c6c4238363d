// Package services – RateService
//
// Thin pass-through over the daily price repository: validation on
// postings, direct delegation for reads and the push subscription.
package services

import (
	"context"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/repo"
)

// RateStore is the repository contract required by RateService.
type RateStore interface {
	Latest(ctx context.Context) (*domain.Rate, error)
	Watch(ctx context.Context) (<-chan repo.RateEvent, error)
	Post(ctx context.Context, newPrice float64) (string, error)
}

// RateService exposes the daily price feed.
type RateService struct {
	Repo RateStore
}

// NewRateService constructs a RateService.
func NewRateService(r RateStore) *RateService {
	return &RateService{Repo: r}
}

// Latest returns the most recent rate, or nil when the feed is empty.
func (s *RateService) Latest(ctx context.Context) (*domain.Rate, error) {
	return s.Repo.Latest(ctx)
}

// Watch subscribes to the feed for the lifetime of ctx.
func (s *RateService) Watch(ctx context.Context) (<-chan repo.RateEvent, error) {
	return s.Repo.Watch(ctx)
}

// Post validates and appends a new daily price.
func (s *RateService) Post(ctx context.Context, newPrice float64) (string, error) {
	if newPrice <= 0 {
		return "", ErrInvalidRate
	}
	return s.Repo.Post(ctx, newPrice)
}

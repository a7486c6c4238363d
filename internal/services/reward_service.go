// Package services – RewardService
//
// Manages the rewards catalog and its redemption history.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// RewardStore is the repository contract required by RewardService.
type RewardStore interface {
	ListRewards(ctx context.Context) ([]domain.Reward, error)
	CreateReward(ctx context.Context, in domain.RewardInput) (string, error)
	UpdateReward(ctx context.Context, id string, upd domain.RewardUpdate) error
	DeleteReward(ctx context.Context, id string) error
	ListRedemptions(ctx context.Context, partnerID string) ([]domain.Redemption, error)
	CreateRedemption(ctx context.Context, in domain.RedemptionInput) (string, error)
	UpdateRedemptionStatus(ctx context.Context, id string, status domain.Status) error
}

// RewardService provides catalog and redemption operations.
type RewardService struct {
	Repo RewardStore
}

// NewRewardService constructs a RewardService.
func NewRewardService(r RewardStore) *RewardService {
	return &RewardService{Repo: r}
}

// ListRewards returns the full catalog.
func (s *RewardService) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.Repo.ListRewards(ctx)
}

// CreateReward validates and persists a catalog entry.
func (s *RewardService) CreateReward(ctx context.Context, in domain.RewardInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", ErrMissingName
	}
	if in.Points <= 0 {
		return "", ErrInvalidPoints
	}
	return s.Repo.CreateReward(ctx, in)
}

// UpdateReward applies a partial catalog update.
func (s *RewardService) UpdateReward(ctx context.Context, id string, upd domain.RewardUpdate) error {
	if upd.Points != nil && *upd.Points <= 0 {
		return ErrInvalidPoints
	}
	err := s.Repo.UpdateReward(ctx, id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRewardNotFound
	}
	return err
}

// DeleteReward removes a catalog entry.
func (s *RewardService) DeleteReward(ctx context.Context, id string) error {
	return s.Repo.DeleteReward(ctx, id)
}

// Redemptions returns history entries narrowed by the view filter,
// optionally for a single partner. Free-text matches the reward name.
func (s *RewardService) Redemptions(ctx context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error) {
	all, err := s.Repo.ListRedemptions(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return listview.Visible(all, f, func(r domain.Redemption) listview.Entry {
		return listview.Entry{CreatedAt: r.CreatedAt, Status: string(r.Status), Name: r.RewardName}
	}), nil
}

// Redeem records a pending redemption against an existing catalog entry.
func (s *RewardService) Redeem(ctx context.Context, in domain.RedemptionInput) (string, error) {
	if in.PartnerID == "" || in.RewardID == "" {
		return "", ErrRewardNotFound
	}
	id, err := s.Repo.CreateRedemption(ctx, in)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrRewardNotFound
	}
	return id, err
}

// SettleRedemption moves a history entry to active (approved) or
// inactive (rejected).
func (s *RewardService) SettleRedemption(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	err := s.Repo.UpdateRedemptionStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRewardNotFound
	}
	return err
}

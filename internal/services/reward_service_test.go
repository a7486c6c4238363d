package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

type stubRewardStore struct {
	listRewards  func(ctx context.Context) ([]domain.Reward, error)
	createReward func(ctx context.Context, in domain.RewardInput) (string, error)
	updateReward func(ctx context.Context, id string, upd domain.RewardUpdate) error
	deleteReward func(ctx context.Context, id string) error
	listReds     func(ctx context.Context, partnerID string) ([]domain.Redemption, error)
	createRed    func(ctx context.Context, in domain.RedemptionInput) (string, error)
	updateRed    func(ctx context.Context, id string, status domain.Status) error
}

func (s stubRewardStore) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.listRewards(ctx)
}
func (s stubRewardStore) CreateReward(ctx context.Context, in domain.RewardInput) (string, error) {
	return s.createReward(ctx, in)
}
func (s stubRewardStore) UpdateReward(ctx context.Context, id string, upd domain.RewardUpdate) error {
	return s.updateReward(ctx, id, upd)
}
func (s stubRewardStore) DeleteReward(ctx context.Context, id string) error {
	return s.deleteReward(ctx, id)
}
func (s stubRewardStore) ListRedemptions(ctx context.Context, partnerID string) ([]domain.Redemption, error) {
	return s.listReds(ctx, partnerID)
}
func (s stubRewardStore) CreateRedemption(ctx context.Context, in domain.RedemptionInput) (string, error) {
	return s.createRed(ctx, in)
}
func (s stubRewardStore) UpdateRedemptionStatus(ctx context.Context, id string, status domain.Status) error {
	return s.updateRed(ctx, id, status)
}

func TestRewardService_CreateValidation(t *testing.T) {
	svc := NewRewardService(stubRewardStore{
		createReward: func(context.Context, domain.RewardInput) (string, error) {
			t.Fatalf("store must not be reached")
			return "", nil
		},
	})

	if _, err := svc.CreateReward(context.Background(), domain.RewardInput{Name: " ", Points: 100}); !errors.Is(err, ErrMissingName) {
		t.Fatalf("blank name: %v", err)
	}
	if _, err := svc.CreateReward(context.Background(), domain.RewardInput{Name: "Coin", Points: 0}); !errors.Is(err, ErrInvalidPoints) {
		t.Fatalf("zero points: %v", err)
	}
}

func TestRewardService_RedeemMapsMissingReward(t *testing.T) {
	svc := NewRewardService(stubRewardStore{
		createRed: func(context.Context, domain.RedemptionInput) (string, error) {
			return "", store.ErrNotFound
		},
	})
	if _, err := svc.Redeem(context.Background(), domain.RedemptionInput{PartnerID: "p1", RewardID: "ghost"}); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("err = %v, want ErrRewardNotFound", err)
	}

	// Blank ids short-circuit before the store.
	if _, err := svc.Redeem(context.Background(), domain.RedemptionInput{}); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("blank input: %v", err)
	}
}

func TestRewardService_SettleValidatesStatus(t *testing.T) {
	svc := NewRewardService(stubRewardStore{
		updateRed: func(context.Context, string, domain.Status) error {
			t.Fatalf("store must not be reached")
			return nil
		},
	})
	if err := svc.SettleRedemption(context.Background(), "r1", domain.Status("done")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status: %v", err)
	}
}

func TestRewardService_RedemptionsFilterByRewardName(t *testing.T) {
	svc := NewRewardService(stubRewardStore{
		listReds: func(_ context.Context, partnerID string) ([]domain.Redemption, error) {
			if partnerID != "p1" {
				t.Fatalf("partnerID = %q", partnerID)
			}
			return []domain.Redemption{
				{RewardName: "Silver Coin", Status: domain.StatusPending},
				{RewardName: "Gold Bar", Status: domain.StatusPending},
			}, nil
		},
	})
	got, err := svc.Redemptions(context.Background(), "p1", listview.Filter{Query: "silver"})
	if err != nil {
		t.Fatalf("redemptions: %v", err)
	}
	if len(got) != 1 || got[0].RewardName != "Silver Coin" {
		t.Fatalf("filtered = %+v", got)
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

type summaryPartners func(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error)

func (fn summaryPartners) List(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error) {
	return fn(ctx, role, f)
}

type summaryOrders func(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error)

func (fn summaryOrders) List(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error) {
	return fn(ctx, ch, f)
}

type summaryRewards func(ctx context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error)

func (fn summaryRewards) Redemptions(ctx context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error) {
	return fn(ctx, partnerID, f)
}

type summaryRates func(ctx context.Context) (*domain.Rate, error)

func (fn summaryRates) Latest(ctx context.Context) (*domain.Rate, error) { return fn(ctx) }

func TestSummaryService_Build(t *testing.T) {
	rate := &domain.Rate{NewPrice: 101.5, OldPrice: 100}

	svc := &SummaryService{
		Partners: summaryPartners(func(_ context.Context, role domain.Role, _ listview.Filter) ([]domain.Partner, error) {
			if role == domain.RoleDealer {
				return make([]domain.Partner, 3), nil
			}
			return make([]domain.Partner, 2), nil
		}),
		Orders: summaryOrders(func(_ context.Context, ch domain.Channel, _ listview.Filter) ([]domain.Order, error) {
			if ch == domain.ChannelInfluencer {
				return []domain.Order{
					{Status: domain.OrderPending},
					{Status: domain.OrderCompleted},
				}, nil
			}
			return []domain.Order{
				{Status: domain.OrderPending},
				{Status: domain.OrderInProgress},
				{Status: domain.OrderPending},
			}, nil
		}),
		Rewards: summaryRewards(func(_ context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error) {
			if partnerID != "" || f.Status != string(domain.StatusPending) {
				t.Fatalf("redemption query args: partner=%q status=%q", partnerID, f.Status)
			}
			return make([]domain.Redemption, 4), nil
		}),
		Rates: summaryRates(func(context.Context) (*domain.Rate, error) { return rate, nil }),
	}

	sum, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.Dealers != 3 || sum.Influencers != 2 {
		t.Fatalf("partner counts: %+v", sum)
	}
	if sum.Orders["Pending"] != 3 || sum.Orders["In Progress"] != 1 || sum.Orders["Completed"] != 1 {
		t.Fatalf("order counts: %v", sum.Orders)
	}
	if sum.PendingRedemptions != 4 {
		t.Fatalf("pending redemptions = %d", sum.PendingRedemptions)
	}
	if sum.LatestRate != rate {
		t.Fatalf("latest rate = %+v", sum.LatestRate)
	}
}

func TestSummaryService_BuildFailsWhole(t *testing.T) {
	boom := errors.New("firestore down")

	svc := &SummaryService{
		Partners: summaryPartners(func(context.Context, domain.Role, listview.Filter) ([]domain.Partner, error) {
			return nil, nil
		}),
		Orders: summaryOrders(func(context.Context, domain.Channel, listview.Filter) ([]domain.Order, error) {
			return nil, boom
		}),
		Rewards: summaryRewards(func(context.Context, string, listview.Filter) ([]domain.Redemption, error) {
			return nil, nil
		}),
		Rates: summaryRates(func(context.Context) (*domain.Rate, error) { return nil, nil }),
	}

	if _, err := svc.Build(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestSummaryService_EmptyRateFeed(t *testing.T) {
	svc := &SummaryService{
		Partners: summaryPartners(func(context.Context, domain.Role, listview.Filter) ([]domain.Partner, error) {
			return nil, nil
		}),
		Orders: summaryOrders(func(context.Context, domain.Channel, listview.Filter) ([]domain.Order, error) {
			return nil, nil
		}),
		Rewards: summaryRewards(func(context.Context, string, listview.Filter) ([]domain.Redemption, error) {
			return nil, nil
		}),
		Rates: summaryRates(func(context.Context) (*domain.Rate, error) { return nil, nil }),
	}

	sum, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.LatestRate != nil {
		t.Fatalf("expected nil latest rate, got %+v", sum.LatestRate)
	}
}

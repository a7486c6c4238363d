// Package services – SummaryService
//
// Aggregates the dashboard landing numbers. The source collections are
// independent, so they are fetched concurrently; any single failure fails
// the summary (the dashboard shows all numbers or none).
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

// Summary is the dashboard landing aggregate.
type Summary struct {
	Dealers            int            `json:"dealers"`
	Influencers        int            `json:"influencers"`
	Orders             map[string]int `json:"orders"` // order status -> count, both channels
	PendingRedemptions int            `json:"pendingRedemptions"`
	LatestRate         *domain.Rate   `json:"latestRate,omitempty"`
}

// SummaryService fans out across the per-entity services.
type SummaryService struct {
	Partners interface {
		List(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error)
	}
	Orders interface {
		List(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error)
	}
	Rewards interface {
		Redemptions(ctx context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error)
	}
	Rates interface {
		Latest(ctx context.Context) (*domain.Rate, error)
	}
}

// Build assembles the summary, querying all collections concurrently.
func (s *SummaryService) Build(ctx context.Context) (*Summary, error) {
	var out Summary
	out.Orders = make(map[string]int)

	g, ctx := errgroup.WithContext(ctx)
	all := listview.Filter{Tab: listview.TabAll}

	g.Go(func() error {
		dealers, err := s.Partners.List(ctx, domain.RoleDealer, all)
		if err != nil {
			return err
		}
		out.Dealers = len(dealers)
		return nil
	})
	g.Go(func() error {
		infl, err := s.Partners.List(ctx, domain.RoleInfluencer, all)
		if err != nil {
			return err
		}
		out.Influencers = len(infl)
		return nil
	})

	counts := make([]map[string]int, 2)
	for i, ch := range []domain.Channel{domain.ChannelInfluencer, domain.ChannelDistributor} {
		i, ch := i, ch
		g.Go(func() error {
			orders, err := s.Orders.List(ctx, ch, all)
			if err != nil {
				return err
			}
			m := make(map[string]int)
			for _, o := range orders {
				m[string(o.Status)]++
			}
			counts[i] = m
			return nil
		})
	}

	g.Go(func() error {
		reds, err := s.Rewards.Redemptions(ctx, "", listview.Filter{
			Tab:    listview.TabAll,
			Status: string(domain.StatusPending),
		})
		if err != nil {
			return err
		}
		out.PendingRedemptions = len(reds)
		return nil
	})

	g.Go(func() error {
		rate, err := s.Rates.Latest(ctx)
		if err != nil {
			return err
		}
		out.LatestRate = rate
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, m := range counts {
		for k, v := range m {
			out.Orders[k] += v
		}
	}
	return &out, nil
}

package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
	"github.com/dealerhub/dealerhub-backend/internal/uploads"
)

func newRewardFixture(t *testing.T) *RewardRepo {
	t.Helper()
	return NewRewardRepo(store.NewMemory(), uploads.New(store.NewMemoryBlobs(), zerolog.Nop()), zerolog.Nop())
}

func TestRewardRepo_CatalogCRUD(t *testing.T) {
	ctx := context.Background()
	r := newRewardFixture(t)

	id, err := r.CreateReward(ctx, domain.RewardInput{
		Name:   "Silver Coin",
		Points: 500,
		Active: true,
		Image:  domain.PendingAttachment([]byte("img"), "image/png"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rw, err := r.GetReward(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rw.Name != "Silver Coin" || rw.Points != 500 || !rw.Active {
		t.Fatalf("decoded reward wrong: %+v", rw)
	}
	if rw.ImageURL == "" {
		t.Fatalf("pending image not resolved to a url")
	}

	points := 450
	if err := r.UpdateReward(ctx, id, domain.RewardUpdate{Points: &points}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rw, _ = r.GetReward(ctx, id)
	if rw.Points != 450 || rw.Name != "Silver Coin" {
		t.Fatalf("merge wrong: %+v", rw)
	}

	if err := r.DeleteReward(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetReward(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

func TestRewardRepo_RedemptionDenormalizesReward(t *testing.T) {
	ctx := context.Background()
	r := newRewardFixture(t)

	rewardID, _ := r.CreateReward(ctx, domain.RewardInput{Name: "Silver Coin", Points: 500, Active: true})

	redID, err := r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p1", RewardID: rewardID})
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}

	// Edit then delete the catalog entry; history must keep the snapshot.
	newName := "Silver Coin (old)"
	newPoints := 900
	r.UpdateReward(ctx, rewardID, domain.RewardUpdate{Name: &newName, Points: &newPoints})
	r.DeleteReward(ctx, rewardID)

	hist, err := r.ListRedemptions(ctx, "p1")
	if err != nil || len(hist) != 1 {
		t.Fatalf("history: %v, n=%d", err, len(hist))
	}
	got := hist[0]
	if got.ID != redID || got.RewardName != "Silver Coin" || got.Points != 500 {
		t.Fatalf("denormalized snapshot lost: %+v", got)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("new redemption status = %q, want pending", got.Status)
	}
}

func TestRewardRepo_RedemptionRequiresReward(t *testing.T) {
	ctx := context.Background()
	r := newRewardFixture(t)

	if _, err := r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p1", RewardID: "ghost"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown reward, got %v", err)
	}
}

func TestRewardRepo_ListRedemptionsFiltersByPartner(t *testing.T) {
	ctx := context.Background()
	r := newRewardFixture(t)

	rewardID, _ := r.CreateReward(ctx, domain.RewardInput{Name: "Coin", Points: 100, Active: true})
	r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p1", RewardID: rewardID})
	r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p2", RewardID: rewardID})
	r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p1", RewardID: rewardID})

	p1, err := r.ListRedemptions(ctx, "p1")
	if err != nil || len(p1) != 2 {
		t.Fatalf("p1 history: %v, n=%d", err, len(p1))
	}
	all, err := r.ListRedemptions(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("all history: %v, n=%d", err, len(all))
	}
}

func TestRewardRepo_UpdateRedemptionStatus(t *testing.T) {
	ctx := context.Background()
	r := newRewardFixture(t)

	rewardID, _ := r.CreateReward(ctx, domain.RewardInput{Name: "Coin", Points: 100, Active: true})
	id, _ := r.CreateRedemption(ctx, domain.RedemptionInput{PartnerID: "p1", RewardID: rewardID})

	if err := r.UpdateRedemptionStatus(ctx, id, domain.StatusActive); err != nil {
		t.Fatalf("settle: %v", err)
	}
	hist, _ := r.ListRedemptions(ctx, "p1")
	if hist[0].Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", hist[0].Status)
	}

	if err := r.UpdateRedemptionStatus(ctx, "missing", domain.StatusActive); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("settle missing: %v", err)
	}
}

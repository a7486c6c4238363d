// Rewards repository: the redeemable catalog ("rewards") and the
// redemption history ("rewards_history").
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
	"github.com/dealerhub/dealerhub-backend/internal/uploads"
)

// RewardRepo persists catalog entries and redemptions.
type RewardRepo struct {
	store   store.DocumentStore
	uploads *uploads.Uploader
	log     zerolog.Logger
	now     func() time.Time
}

// NewRewardRepo constructs a RewardRepo.
func NewRewardRepo(s store.DocumentStore, u *uploads.Uploader, log zerolog.Logger) *RewardRepo {
	return &RewardRepo{store: s, uploads: u, log: log, now: time.Now}
}

// ListRewards returns the catalog in store order.
func (r *RewardRepo) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	docs, err := r.store.List(ctx, colRewards)
	if err != nil {
		r.log.Error().Err(err).Msg("list rewards")
		return nil, err
	}
	out := make([]domain.Reward, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodeReward(d))
	}
	return out, nil
}

// GetReward fetches one catalog entry or store.ErrNotFound.
func (r *RewardRepo) GetReward(ctx context.Context, id string) (*domain.Reward, error) {
	doc, err := r.store.Get(ctx, colRewards, id)
	if err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("get reward")
		}
		return nil, err
	}
	rw := decodeReward(doc)
	return &rw, nil
}

// CreateReward writes a catalog entry, resolving the image attachment
// first. Returns the store-assigned id.
func (r *RewardRepo) CreateReward(ctx context.Context, in domain.RewardInput) (string, error) {
	doc := map[string]any{
		"name":      in.Name,
		"points":    in.Points,
		"active":    in.Active,
		"createdAt": r.now(),
		"imageUrl":  ref(r.uploads.Resolve(ctx, "reward", in.Name, "image", in.Image)),
	}
	id, err := r.store.Create(ctx, colRewards, doc)
	if err != nil {
		r.log.Error().Err(err).Msg("create reward")
		return "", err
	}
	return id, nil
}

// UpdateReward shallow-merges the non-nil fields of upd.
func (r *RewardRepo) UpdateReward(ctx context.Context, id string, upd domain.RewardUpdate) error {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Points != nil {
		fields["points"] = *upd.Points
	}
	if upd.Active != nil {
		fields["active"] = *upd.Active
	}
	if upd.Image != nil {
		fields["imageUrl"] = ref(r.uploads.Resolve(ctx, "reward", id, "image", *upd.Image))
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.store.Merge(ctx, colRewards, id, fields); err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("update reward")
		}
		return err
	}
	return nil
}

// DeleteReward removes a catalog entry. History rows that reference it
// keep their denormalized name and points.
func (r *RewardRepo) DeleteReward(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, colRewards, id); err != nil {
		r.log.Error().Err(err).Str("id", id).Msg("delete reward")
		return err
	}
	return nil
}

// ListRedemptions returns the redemption history, optionally constrained
// to one partner.
func (r *RewardRepo) ListRedemptions(ctx context.Context, partnerID string) ([]domain.Redemption, error) {
	var filters []store.Filter
	if partnerID != "" {
		filters = append(filters, store.Filter{Field: "partnerId", Value: partnerID})
	}
	docs, err := r.store.List(ctx, colRewardsHistory, filters...)
	if err != nil {
		r.log.Error().Err(err).Msg("list redemptions")
		return nil, err
	}
	out := make([]domain.Redemption, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodeRedemption(d))
	}
	return out, nil
}

// CreateRedemption records a redemption with status pending, copying the
// reward's name and point cost so history survives catalog edits. The
// referenced reward must exist.
func (r *RewardRepo) CreateRedemption(ctx context.Context, in domain.RedemptionInput) (string, error) {
	reward, err := r.GetReward(ctx, in.RewardID)
	if err != nil {
		return "", err
	}
	doc := map[string]any{
		"partnerId":  in.PartnerID,
		"rewardId":   reward.ID,
		"rewardName": reward.Name,
		"points":     reward.Points,
		"status":     string(domain.StatusPending),
		"createdAt":  r.now(),
	}
	id, err := r.store.Create(ctx, colRewardsHistory, doc)
	if err != nil {
		r.log.Error().Err(err).Str("rewardId", in.RewardID).Msg("create redemption")
		return "", err
	}
	return id, nil
}

// UpdateRedemptionStatus moves a history entry through its lifecycle.
func (r *RewardRepo) UpdateRedemptionStatus(ctx context.Context, id string, status domain.Status) error {
	err := r.store.Merge(ctx, colRewardsHistory, id, map[string]any{"status": string(status)})
	if err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("update redemption")
		}
		return err
	}
	return nil
}

func decodeReward(d store.Document) domain.Reward {
	return domain.Reward{
		ID:        d.ID,
		Name:      docString(d.Data, "name"),
		Points:    docInt(d.Data, "points"),
		ImageURL:  docString(d.Data, "imageUrl"),
		Active:    docBool(d.Data, "active"),
		CreatedAt: docTime(d.Data, "createdAt"),
	}
}

func decodeRedemption(d store.Document) domain.Redemption {
	return domain.Redemption{
		ID:         d.ID,
		PartnerID:  docString(d.Data, "partnerId"),
		RewardID:   docString(d.Data, "rewardId"),
		RewardName: docString(d.Data, "rewardName"),
		Points:     docInt(d.Data, "points"),
		Status:     domain.Status(docString(d.Data, "status")),
		CreatedAt:  docTime(d.Data, "createdAt"),
	}
}

// Reward and redemption HTTP handlers.
//
//   - GET    /rewards                    (catalog)
//   - POST   /rewards                    (create, image attachment inline)
//   - PATCH  /rewards/{id}
//   - DELETE /rewards/{id}
//   - GET    /rewards/history            (redemptions, ?partner= filter)
//   - POST   /rewards/history            (redeem)
//   - PATCH  /rewards/history/{id}       (settle: approve / reject)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

// RewardService defines the reward catalog and redemption operations
// consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type RewardService interface {
	ListRewards(ctx context.Context) ([]domain.Reward, error)
	CreateReward(ctx context.Context, in domain.RewardInput) (string, error)
	UpdateReward(ctx context.Context, id string, upd domain.RewardUpdate) error
	DeleteReward(ctx context.Context, id string) error
	Redemptions(ctx context.Context, partnerID string, f listview.Filter) ([]domain.Redemption, error)
	Redeem(ctx context.Context, in domain.RedemptionInput) (string, error)
	SettleRedemption(ctx context.Context, id string, status domain.Status) error
}

// SettleRedemptionRequest is the JSON payload for settling a redemption.
type SettleRedemptionRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// ListRewards returns the reward catalog.
func (h *Handlers) ListRewards(c *gin.Context) {
	rewards, err := h.rewardSvc.ListRewards(c.Request.Context())
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, rewards)
}

// CreateReward adds a catalog entry. The image field accepts a data URI
// or an already-stored https URL.
func (h *Handlers) CreateReward(c *gin.Context) {
	var in domain.RewardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.rewardSvc.CreateReward(c.Request.Context(), in)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateReward applies a partial update to a catalog entry.
func (h *Handlers) UpdateReward(c *gin.Context) {
	var upd domain.RewardUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.rewardSvc.UpdateReward(c.Request.Context(), c.Param("id"), upd); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// DeleteReward removes a catalog entry.
func (h *Handlers) DeleteReward(c *gin.Context) {
	if err := h.rewardSvc.DeleteReward(c.Request.Context(), c.Param("id")); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// ListRedemptions returns redemption history, optionally restricted to a
// single partner via ?partner=, with the usual tab/status/q filters.
func (h *Handlers) ListRedemptions(c *gin.Context) {
	items, err := h.rewardSvc.Redemptions(c.Request.Context(), c.Query("partner"), h.viewFilter(c))
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, items)
}

// Redeem records a redemption, denormalizing the reward name and point
// cost so history survives catalog edits.
func (h *Handlers) Redeem(c *gin.Context) {
	var in domain.RedemptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.rewardSvc.Redeem(c.Request.Context(), in)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}

// SettleRedemption moves a pending redemption to active (approved) or
// inactive (rejected).
func (h *Handlers) SettleRedemption(c *gin.Context) {
	var req SettleRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.rewardSvc.SettleRedemption(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

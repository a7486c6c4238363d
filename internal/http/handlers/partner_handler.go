// Partner HTTP handlers.
//
// Dealers and influencers share one document shape and one handler set;
// the role the route is mounted under decides which slice of the users
// collection it serves:
//
//   - GET    /dealers, /influencers          (list, tab/status/q filters)
//   - POST   /dealers, /influencers          (create, attachments inline)
//   - GET    /dealers/{id}, /influencers/{id}
//   - PATCH  /dealers/{id}, /influencers/{id}
//   - DELETE /dealers/{id}, /influencers/{id}
//
// Handlers are transport-thin: they bind input, call the partner
// service, and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

// PartnerService defines the partner lifecycle operations consumed by
// HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type PartnerService interface {
	List(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error)
	Get(ctx context.Context, id string) (*domain.Partner, error)
	Create(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error)
	Update(ctx context.Context, id string, upd domain.PartnerUpdate) error
	Delete(ctx context.Context, id string) error
}

// CreatedResponse carries the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ListPartners returns the handler serving the list endpoint for one
// role.
func (h *Handlers) ListPartners(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		partners, err := h.partnerSvc.List(c.Request.Context(), role, h.viewFilter(c))
		if err != nil {
			failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
			return
		}
		ok(c, http.StatusOK, partners)
	}
}

// GetPartner serves GET on a single partner by document id.
func (h *Handlers) GetPartner(c *gin.Context) {
	p, err := h.partnerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreatePartner returns the handler creating a partner under one role.
// Attachment fields accept either a data URI (uploaded to object
// storage) or an already-stored https URL (kept as-is).
func (h *Handlers) CreatePartner(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.PartnerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}

		id, err := h.partnerSvc.Create(c.Request.Context(), role, in)
		if err != nil {
			failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
			return
		}
		ok(c, http.StatusCreated, CreatedResponse{ID: id})
	}
}

// UpdatePartner applies a partial update. Absent fields are left
// untouched; attachment fields follow the same data-URI-or-URL contract
// as creation.
func (h *Handlers) UpdatePartner(c *gin.Context) {
	var upd domain.PartnerUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.partnerSvc.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// DeletePartner removes a partner document. Deleting an absent id is a
// no-op and still returns 204.
func (h *Handlers) DeletePartner(c *gin.Context) {
	if err := h.partnerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// Live rate HTTP handlers.
//
//   - GET  /rates/latest  (one-shot read of the newest posted rate)
//   - GET  /rates/stream  (server-sent events: pushes every new rate)
//   - POST /rates         (publish a new rate)
//
// The stream endpoint holds a document watch for the lifetime of the
// request. The watch is bound to the request context, so a client
// disconnect tears the subscription down without leaking the listener.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/repo"
)

// RateService defines the live-rate operations consumed by HTTP
// handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type RateService interface {
	Latest(ctx context.Context) (*domain.Rate, error)
	Watch(ctx context.Context) (<-chan repo.RateEvent, error)
	Post(ctx context.Context, newPrice float64) (string, error)
}

// PostRateRequest is the JSON payload for publishing a rate.
type PostRateRequest struct {
	NewPrice float64 `json:"newPrice" binding:"required"`
}

// LatestRate returns the newest rate document, or 204 when none has ever
// been posted.
func (h *Handlers) LatestRate(c *gin.Context) {
	rate, err := h.rateSvc.Latest(c.Request.Context())
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	if rate == nil {
		noContent(c)
		return
	}
	ok(c, http.StatusOK, rate)
}

// StreamRates serves the live rate feed over server-sent events. The
// current state is delivered immediately — as a "rate" event, or an
// "empty" event when the collection has no documents — and each newly
// posted rate follows as its own "rate" event. Watch errors surface as a
// terminal "error" event.
func (h *Handlers) StreamRates(c *gin.Context) {
	events, err := h.rateSvc.Watch(c.Request.Context())
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeStreamFailed)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-store")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			return false
		}
		switch {
		case ev.Err != nil:
			c.SSEvent("error", gin.H{"message": "rate feed interrupted"})
			return false
		case ev.Rate == nil:
			c.SSEvent("empty", gin.H{})
		default:
			c.SSEvent("rate", ev.Rate)
		}
		return true
	})
}

// PostRate publishes a new rate. The previous newest price is carried
// into the document as oldPrice so clients can render the delta without
// a second read.
func (h *Handlers) PostRate(c *gin.Context) {
	var req PostRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "newPrice required")
		return
	}

	id, err := h.rateSvc.Post(c.Request.Context(), req.NewPrice)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}

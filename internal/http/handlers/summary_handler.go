// Dashboard summary handler.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/services"
)

// SummaryService defines the aggregate dashboard read consumed by HTTP
// handlers.
type SummaryService interface {
	Build(ctx context.Context) (*services.Summary, error)
}

// DashboardSummary serves GET /dashboard/summary: partner counts, order
// status tallies per channel, pending redemptions and the latest rate,
// gathered concurrently.
func (h *Handlers) DashboardSummary(c *gin.Context) {
	sum, err := h.summarySvc.Build(c.Request.Context())
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, sum)
}

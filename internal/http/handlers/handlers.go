// Handler wiring.
//
// Handlers groups the HTTP endpoints of the dashboard API and depends on
// abstract service interfaces (declared next to the handlers that
// consume them) so transport concerns stay separate from business logic.
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

// Handlers groups HTTP endpoints for auth, partners, orders, rewards,
// rates and the dashboard summary.
type Handlers struct {
	authSvc    AuthService
	partnerSvc PartnerService
	orderSvc   OrderService
	rewardSvc  RewardService
	rateSvc    RateService
	summarySvc SummaryService

	// loc is the calendar used by the "today" list tab. Defaults to the
	// server's local zone.
	loc *time.Location
	now func() time.Time
}

// New constructs a Handlers instance bound to the given services.
func New(auth AuthService, partners PartnerService, orders OrderService, rewards RewardService, rates RateService, summary SummaryService) *Handlers {
	return &Handlers{
		authSvc:    auth,
		partnerSvc: partners,
		orderSvc:   orders,
		rewardSvc:  rewards,
		rateSvc:    rates,
		summarySvc: summary,
		loc:        time.Local,
		now:        time.Now,
	}
}

// viewFilter builds the list filter every collection endpoint shares
// from the tab / status / q query parameters. Unknown tab values fall
// back to "all" rather than erroring, matching what the dashboard UI
// sends.
func (h *Handlers) viewFilter(c *gin.Context) listview.Filter {
	return listview.Filter{
		Tab:      listview.ParseTab(c.Query("tab")),
		Status:   c.Query("status"),
		Query:    c.Query("q"),
		Now:      h.now(),
		Location: h.loc,
	}
}

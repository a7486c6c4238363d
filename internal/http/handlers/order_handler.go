// Order HTTP handlers.
//
// Orders live in two parallel collections selected by the {channel}
// path segment (influencer or distributor):
//
//   - GET    /orders/{channel}                       (list, tab/status/q filters)
//   - POST   /orders/{channel}                       (create)
//   - PATCH  /orders/{channel}/{id}                  (update status / note)
//   - DELETE /orders/{channel}/{id}
//   - GET    /orders/{channel}/{id}/fulfillments
//   - POST   /orders/{channel}/{id}/fulfillments
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
)

// OrderService defines the order operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type OrderService interface {
	List(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error)
	Create(ctx context.Context, ch domain.Channel, in domain.OrderInput) (string, error)
	Update(ctx context.Context, ch domain.Channel, id string, upd domain.OrderUpdate) error
	Delete(ctx context.Context, ch domain.Channel, id string) error
	Fulfillments(ctx context.Context, ch domain.Channel, orderID string) ([]domain.Fulfillment, error)
	Fulfill(ctx context.Context, ch domain.Channel, orderID string, in domain.FulfillmentInput) (string, error)
}

func channelParam(c *gin.Context) domain.Channel {
	return domain.Channel(c.Param("channel"))
}

// ListOrders serves the order list for one channel.
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.orderSvc.List(c.Request.Context(), channelParam(c), h.viewFilter(c))
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, orders)
}

// CreateOrder records a new order in the channel's collection.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var in domain.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.orderSvc.Create(c.Request.Context(), channelParam(c), in)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateOrder applies a partial update to an order.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	var upd domain.OrderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.orderSvc.Update(c.Request.Context(), channelParam(c), c.Param("id"), upd); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// DeleteOrder removes an order document.
func (h *Handlers) DeleteOrder(c *gin.Context) {
	if err := h.orderSvc.Delete(c.Request.Context(), channelParam(c), c.Param("id")); err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	noContent(c)
}

// ListFulfillments returns the fulfillment entries recorded against one
// order.
func (h *Handlers) ListFulfillments(c *gin.Context) {
	items, err := h.orderSvc.Fulfillments(c.Request.Context(), channelParam(c), c.Param("id"))
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeQueryFailed)
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateFulfillment appends a fulfillment entry to an existing order.
func (h *Handlers) CreateFulfillment(c *gin.Context) {
	var in domain.FulfillmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.orderSvc.Fulfill(c.Request.Context(), channelParam(c), c.Param("id"), in)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeWriteFailed)
		return
	}
	ok(c, http.StatusCreated, CreatedResponse{ID: id})
}

// Order repository. Each sales channel owns an order book collection
// (influencer_orders, distributor_orders) and a matching fulfillment log.
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// OrderRepo persists orders and their fulfillments.
type OrderRepo struct {
	store store.DocumentStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewOrderRepo constructs an OrderRepo.
func NewOrderRepo(s store.DocumentStore, log zerolog.Logger) *OrderRepo {
	return &OrderRepo{store: s, log: log, now: time.Now}
}

// List returns every order of a channel in store order.
func (r *OrderRepo) List(ctx context.Context, ch domain.Channel) ([]domain.Order, error) {
	docs, err := r.store.List(ctx, ordersCollection(ch))
	if err != nil {
		r.log.Error().Err(err).Str("channel", string(ch)).Msg("list orders")
		return nil, err
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodeOrder(d))
	}
	return out, nil
}

// Get fetches one order or store.ErrNotFound.
func (r *OrderRepo) Get(ctx context.Context, ch domain.Channel, id string) (*domain.Order, error) {
	doc, err := r.store.Get(ctx, ordersCollection(ch), id)
	if err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("get order")
		}
		return nil, err
	}
	o := decodeOrder(doc)
	return &o, nil
}

// Create writes a new order with status Pending and a fresh creation
// timestamp, returning the store-assigned id.
func (r *OrderRepo) Create(ctx context.Context, ch domain.Channel, in domain.OrderInput) (string, error) {
	doc := map[string]any{
		"partnerId": in.PartnerID,
		"quantity":  in.Quantity,
		"rate":      in.Rate,
		"note":      in.Note,
		"status":    string(domain.OrderPending),
		"createdAt": r.now(),
	}
	id, err := r.store.Create(ctx, ordersCollection(ch), doc)
	if err != nil {
		r.log.Error().Err(err).Str("channel", string(ch)).Msg("create order")
		return "", err
	}
	return id, nil
}

// Update shallow-merges the non-nil fields of upd; absent fields keep
// their prior values.
func (r *OrderRepo) Update(ctx context.Context, ch domain.Channel, id string, upd domain.OrderUpdate) error {
	fields := map[string]any{}
	if upd.Quantity != nil {
		fields["quantity"] = *upd.Quantity
	}
	if upd.Rate != nil {
		fields["rate"] = *upd.Rate
	}
	if upd.Status != nil {
		fields["status"] = string(*upd.Status)
	}
	if upd.Note != nil {
		fields["note"] = *upd.Note
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.store.Merge(ctx, ordersCollection(ch), id, fields); err != nil {
		if err != store.ErrNotFound {
			r.log.Error().Err(err).Str("id", id).Msg("update order")
		}
		return err
	}
	return nil
}

// Delete removes an order document. Fulfillments recorded against it are
// left in place.
func (r *OrderRepo) Delete(ctx context.Context, ch domain.Channel, id string) error {
	if err := r.store.Delete(ctx, ordersCollection(ch), id); err != nil {
		r.log.Error().Err(err).Str("id", id).Msg("delete order")
		return err
	}
	return nil
}

// ListFulfillments returns the fulfillments recorded against one order.
//
// The whole channel log is fetched and narrowed in memory rather than
// server-side. Fulfillment logs stay small in practice; revisit if a
// channel's log grows past a few thousand entries.
func (r *OrderRepo) ListFulfillments(ctx context.Context, ch domain.Channel, orderID string) ([]domain.Fulfillment, error) {
	docs, err := r.store.List(ctx, fulfillmentsCollection(ch))
	if err != nil {
		r.log.Error().Err(err).Str("channel", string(ch)).Msg("list fulfillments")
		return nil, err
	}
	out := make([]domain.Fulfillment, 0)
	for _, d := range docs {
		if docString(d.Data, "orderId") != orderID {
			continue
		}
		out = append(out, domain.Fulfillment{
			ID:        d.ID,
			OrderID:   orderID,
			Quantity:  docInt(d.Data, "quantity"),
			Note:      docString(d.Data, "note"),
			CreatedAt: docTime(d.Data, "createdAt"),
		})
	}
	return out, nil
}

// CreateFulfillment records a delivery against an order.
func (r *OrderRepo) CreateFulfillment(ctx context.Context, ch domain.Channel, orderID string, in domain.FulfillmentInput) (string, error) {
	doc := map[string]any{
		"orderId":   orderID,
		"quantity":  in.Quantity,
		"note":      in.Note,
		"createdAt": r.now(),
	}
	id, err := r.store.Create(ctx, fulfillmentsCollection(ch), doc)
	if err != nil {
		r.log.Error().Err(err).Str("orderId", orderID).Msg("create fulfillment")
		return "", err
	}
	return id, nil
}

func decodeOrder(d store.Document) domain.Order {
	return domain.Order{
		ID:        d.ID,
		PartnerID: docString(d.Data, "partnerId"),
		Quantity:  docInt(d.Data, "quantity"),
		Rate:      docFloat(d.Data, "rate"),
		Status:    domain.OrderStatus(docString(d.Data, "status")),
		Note:      docString(d.Data, "note"),
		CreatedAt: docTime(d.Data, "createdAt"),
	}
}

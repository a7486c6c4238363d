// Package services – OrderService
//
// Validates and persists orders and fulfillments per sales channel and
// applies the list-view filter to order lists.
package services

import (
	"context"
	"errors"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// OrderStore is the repository contract required by OrderService.
type OrderStore interface {
	List(ctx context.Context, ch domain.Channel) ([]domain.Order, error)
	Get(ctx context.Context, ch domain.Channel, id string) (*domain.Order, error)
	Create(ctx context.Context, ch domain.Channel, in domain.OrderInput) (string, error)
	Update(ctx context.Context, ch domain.Channel, id string, upd domain.OrderUpdate) error
	Delete(ctx context.Context, ch domain.Channel, id string) error
	ListFulfillments(ctx context.Context, ch domain.Channel, orderID string) ([]domain.Fulfillment, error)
	CreateFulfillment(ctx context.Context, ch domain.Channel, orderID string, in domain.FulfillmentInput) (string, error)
}

// OrderService provides order-book operations.
type OrderService struct {
	Repo OrderStore
}

// NewOrderService constructs an OrderService.
func NewOrderService(r OrderStore) *OrderService {
	return &OrderService{Repo: r}
}

// List returns a channel's orders narrowed by the view filter. Free-text
// matches against the order note.
func (s *OrderService) List(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error) {
	if !ch.Valid() {
		return nil, ErrInvalidChannel
	}
	all, err := s.Repo.List(ctx, ch)
	if err != nil {
		return nil, err
	}
	return listview.Visible(all, f, func(o domain.Order) listview.Entry {
		return listview.Entry{CreatedAt: o.CreatedAt, Status: string(o.Status), Name: o.Note}
	}), nil
}

// Create validates and places an order; the repository stamps status
// Pending and the creation timestamp.
func (s *OrderService) Create(ctx context.Context, ch domain.Channel, in domain.OrderInput) (string, error) {
	if !ch.Valid() {
		return "", ErrInvalidChannel
	}
	if in.Quantity <= 0 {
		return "", ErrInvalidQuantity
	}
	if in.Rate <= 0 {
		return "", ErrInvalidRate
	}
	return s.Repo.Create(ctx, ch, in)
}

// Update applies a partial update to an order.
func (s *OrderService) Update(ctx context.Context, ch domain.Channel, id string, upd domain.OrderUpdate) error {
	if !ch.Valid() {
		return ErrInvalidChannel
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return ErrInvalidStatus
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if upd.Rate != nil && *upd.Rate <= 0 {
		return ErrInvalidRate
	}
	err := s.Repo.Update(ctx, ch, id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// Delete removes an order from its channel.
func (s *OrderService) Delete(ctx context.Context, ch domain.Channel, id string) error {
	if !ch.Valid() {
		return ErrInvalidChannel
	}
	return s.Repo.Delete(ctx, ch, id)
}

// Fulfillments lists the deliveries recorded against an order.
func (s *OrderService) Fulfillments(ctx context.Context, ch domain.Channel, orderID string) ([]domain.Fulfillment, error) {
	if !ch.Valid() {
		return nil, ErrInvalidChannel
	}
	return s.Repo.ListFulfillments(ctx, ch, orderID)
}

// Fulfill validates and records a delivery against an existing order.
func (s *OrderService) Fulfill(ctx context.Context, ch domain.Channel, orderID string, in domain.FulfillmentInput) (string, error) {
	if !ch.Valid() {
		return "", ErrInvalidChannel
	}
	if in.Quantity <= 0 {
		return "", ErrInvalidQuantity
	}
	if _, err := s.Repo.Get(ctx, ch, orderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return s.Repo.CreateFulfillment(ctx, ch, orderID, in)
}

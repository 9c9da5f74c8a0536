package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/timberworks/storefront-engine/internal/cart"
	"github.com/timberworks/storefront-engine/internal/events"
	"github.com/timberworks/storefront-engine/internal/obs"
	"github.com/timberworks/storefront-engine/internal/pricing"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// Order is the immutable snapshot handed to the order-creation boundary.
// Amounts are rounded to minor-unit precision; the engine never recomputes
// an order after it has been cut.
type Order struct {
	ID        uuid.UUID
	Owner     string
	Currency  string
	Status    string
	Items     []cart.LineItem
	Subtotal  pricing.Money
	VAT       pricing.Money
	Shipping  pricing.Money
	Total     pricing.Money
	CreatedAt time.Time
}

// Service turns a cart into an order snapshot and clears it on success.
type Service struct {
	Carts    *cart.Service
	Events   *events.Bus
	Currency string
	Now      func() time.Time
	Log      zerolog.Logger
}

// Create snapshots the owner's cart totals into an order, empties the cart
// and emits the checked-out event. Persistence of the order is the caller's
// responsibility.
func (s *Service) Create(ctx context.Context, owner string) (Order, error) {
	if s == nil || s.Carts == nil {
		return Order{}, errors.New("checkout service not configured")
	}
	totals, err := s.Carts.Totals(owner)
	if err != nil {
		s.count("error")
		return Order{}, err
	}
	if len(totals.Items) == 0 {
		s.count("empty")
		return Order{}, ErrEmptyCart
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	summary := pricing.Totals{
		Subtotal: totals.Subtotal,
		VAT:      totals.VAT,
		Shipping: totals.Shipping,
		Total:    totals.Total,
	}.Rounded()
	order := Order{
		ID:        uuid.New(),
		Owner:     owner,
		Currency:  s.Currency,
		Status:    "PENDING_PAYMENT",
		Items:     totals.Items,
		Subtotal:  summary.Subtotal,
		VAT:       summary.VAT,
		Shipping:  summary.Shipping,
		Total:     summary.Total,
		CreatedAt: now,
	}
	if _, err := s.Carts.Clear(owner); err != nil {
		s.count("error")
		return Order{}, err
	}
	s.count("ok")
	s.Log.Info().
		Str("owner", owner).
		Str("order_id", order.ID.String()).
		Str("total", order.Total.String()).
		Int("items", len(order.Items)).
		Msg("cart_checked_out")
	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicCartCheckedOut, order.ID, map[string]any{
			"owner":    owner,
			"currency": order.Currency,
			"subtotal": order.Subtotal.String(),
			"vat":      order.VAT.String(),
			"shipping": order.Shipping.String(),
			"total":    order.Total.String(),
		})
	}
	return order, nil
}

func (s *Service) count(result string) {
	if obs.CheckoutTotal == nil {
		return
	}
	obs.CheckoutTotal.WithLabelValues(result).Inc()
}

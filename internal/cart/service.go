package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/obs"
	"github.com/timberworks/storefront-engine/internal/pricing"
	"github.com/timberworks/storefront-engine/internal/shipping"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidQuantity is returned when an add is attempted with a
// non-positive quantity. Updates treat qty <= 0 as delete instead.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Service encapsulates cart domain operations. One cart per owner; owners
// are expected to mutate their cart sequentially (the surrounding layer
// serializes requests), the internal lock only keeps the owner map and
// version bumps coherent.
type Service struct {
	VATRate decimal.Decimal
	Policy  shipping.Policy
	Now     func() time.Time
	Log     zerolog.Logger

	mu    sync.Mutex
	carts map[string]*Cart
}

// NewService constructs a Service with the provided tax rate and delivery policy.
func NewService(vatRate decimal.Decimal, policy shipping.Policy, log zerolog.Logger) *Service {
	return &Service{
		VATRate: vatRate,
		Policy:  policy,
		Log:     log,
		carts:   make(map[string]*Cart),
	}
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureCart loads or creates the cart for the owner and returns a snapshot.
func (s *Service) EnsureCart(owner string) (Cart, error) {
	if s == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	if owner == "" {
		return Cart{}, errors.New("cart owner is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(owner).Snapshot(), nil
}

func (s *Service) ensureLocked(owner string) *Cart {
	if s.carts == nil {
		s.carts = make(map[string]*Cart)
	}
	c, ok := s.carts[owner]
	if !ok {
		now := s.now()
		c = &Cart{ID: uuid.New(), Owner: owner, CreatedAt: now, UpdatedAt: now}
		s.carts[owner] = c
	}
	return c
}

func (s *Service) touchLocked(c *Cart) {
	c.Version++
	c.UpdatedAt = s.now()
}

func countOp(operation, result string) {
	if obs.CartOperationTotal == nil {
		return
	}
	obs.CartOperationTotal.WithLabelValues(operation, result).Inc()
}

// AddItem inserts the line into the owner's cart, merging into an existing
// line when product and option values are identical. The merged line keeps
// its original frozen unit price.
func (s *Service) AddItem(owner string, item LineItem) (Cart, error) {
	if s == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	if owner == "" {
		return Cart{}, errors.New("cart owner is required")
	}
	if item.Quantity <= 0 {
		countOp("add", "invalid")
		return Cart{}, fmt.Errorf("quantity must be positive: %w", ErrInvalidQuantity)
	}
	if item.UnitPrice.IsNegative() {
		item.UnitPrice = decimal.Zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLocked(owner)
	merged := false
	for i := range c.Items {
		if c.Items[i].sameConfig(item) {
			c.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item = item.clone()
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		c.Items = append(c.Items, item)
	}
	s.touchLocked(c)
	countOp("add", "ok")
	s.Log.Debug().
		Str("owner", owner).
		Str("product", item.ProductRef).
		Bool("merged", merged).
		Int("items", len(c.Items)).
		Msg("cart_item_added")
	return c.Snapshot(), nil
}

// UpdateQuantity sets the quantity for a line. A quantity of zero or below
// removes the line. A missing id within an existing cart is a no-op (absence
// means already removed), but an owner without a cart is ErrNotFound:
// updates never create carts the way AddItem does.
func (s *Service) UpdateQuantity(owner string, id uuid.UUID, quantity int) (Cart, error) {
	if s == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[owner]
	if !ok {
		countOp("update", "not_found")
		return Cart{}, ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		s.touchLocked(c)
		break
	}
	countOp("update", "ok")
	return c.Snapshot(), nil
}

// RemoveItem deletes a line by id; no-op when the line is absent,
// ErrNotFound when the owner has no cart.
func (s *Service) RemoveItem(owner string, id uuid.UUID) (Cart, error) {
	return s.UpdateQuantity(owner, id, 0)
}

// Clear empties the owner's cart unconditionally.
func (s *Service) Clear(owner string) (Cart, error) {
	if s == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[owner]
	if !ok {
		countOp("clear", "not_found")
		return Cart{}, ErrNotFound
	}
	if len(c.Items) > 0 {
		c.Items = nil
		s.touchLocked(c)
	}
	countOp("clear", "ok")
	return c.Snapshot(), nil
}

// Totals derives subtotal, VAT, shipping and grand total for the owner's
// cart. Pure with respect to cart state; never mutates.
func (s *Service) Totals(owner string) (Totals, error) {
	if s == nil {
		return Totals{}, errors.New("cart service not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[owner]
	if !ok {
		return Totals{}, ErrNotFound
	}
	return s.totalsLocked(c), nil
}

func (s *Service) totalsLocked(c *Cart) Totals {
	snapshot := c.Snapshot()
	priceItems := make([]pricing.Item, 0, len(snapshot.Items))
	shipItems := make([]shipping.Item, 0, len(snapshot.Items))
	for _, li := range snapshot.Items {
		priceItems = append(priceItems, pricing.Item{Qty: li.Quantity, UnitPrice: li.UnitPrice})
		shipItems = append(shipItems, shipping.Item{Category: li.Category, Quantity: li.Quantity, Dims: li.Dims})
	}
	subtotal := pricing.Compute(priceItems, s.VATRate, decimal.Zero).Subtotal
	cost := shipping.Estimate(shipItems, subtotal, s.Policy)
	summary := pricing.Compute(priceItems, s.VATRate, cost)
	return Totals{
		Subtotal: summary.Subtotal,
		VAT:      summary.VAT,
		Shipping: summary.Shipping,
		Total:    summary.Total,
		Items:    snapshot.Items,
	}
}

package cart

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/pricing"
)

// LineItem is one configured product entry in a cart. UnitPrice is frozen at
// insertion time; later base-price changes never alter items already added.
type LineItem struct {
	ID         uuid.UUID
	ProductRef string
	Category   catalog.Category
	Options    map[string]string
	Dims       *pricing.Dimensions
	Quantity   int
	UnitPrice  pricing.Money
}

// sameConfig reports whether two lines describe the same product with the
// same option values and dimensions. Value equality, not identity: two
// additions of an identical configuration must merge.
func (li LineItem) sameConfig(other LineItem) bool {
	if li.ProductRef != other.ProductRef || li.Category != other.Category {
		return false
	}
	if !maps.Equal(li.Options, other.Options) {
		return false
	}
	return sameDims(li.Dims, other.Dims)
}

func sameDims(a, b *pricing.Dimensions) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.LengthM.Equal(b.LengthM) &&
		a.WidthMM.Equal(b.WidthMM) &&
		a.ThicknessMM.Equal(b.ThicknessMM) &&
		a.AreaM2.Equal(b.AreaM2)
}

func (li LineItem) clone() LineItem {
	out := li
	out.Options = maps.Clone(li.Options)
	if li.Dims != nil {
		dims := *li.Dims
		out.Dims = &dims
	}
	return out
}

// Cart is the ordered line-item collection for one owner. It is a versioned
// value: every mutation bumps Version, and callers only ever see snapshots.
type Cart struct {
	ID        uuid.UUID
	Owner     string
	Version   int64
	Items     []LineItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a deep copy safe to hand outside the service.
func (c Cart) Snapshot() Cart {
	out := c
	out.Items = make([]LineItem, len(c.Items))
	for i, li := range c.Items {
		out.Items[i] = li.clone()
	}
	return out
}

// Totals is the derived cart summary consumed by the checkout boundary.
// Amounts are full precision; round at the order document.
type Totals struct {
	Subtotal pricing.Money
	VAT      pricing.Money
	Shipping pricing.Money
	Total    pricing.Money
	Items    []LineItem
}

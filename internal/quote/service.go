package quote

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/cart"
	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/common"
	"github.com/timberworks/storefront-engine/internal/events"
	"github.com/timberworks/storefront-engine/internal/obs"
	"github.com/timberworks/storefront-engine/internal/pricing"
)

// Request is the flat selection payload submitted by the configuration UI,
// joined with the immutable product snapshot fetched by the caller.
type Request struct {
	ProductRef string              `validate:"required"`
	Category   string              `validate:"required"`
	BaseRate   decimal.Decimal     `validate:"required"`
	Selections map[string]string   `validate:"required"`
	Dimensions *pricing.Dimensions `validate:"-"`
	Quantity   int                 `validate:"gte=1"`
}

// Service prices one configured product into a cart line item: selection
// validation, price calculation, frozen snapshot construction.
type Service struct {
	Catalog  catalog.Catalog
	Validate *validator.Validate
	Bus      *events.Bus
	Log      zerolog.Logger
}

// NewService constructs a quote service over the given option catalog.
func NewService(cat catalog.Catalog, log zerolog.Logger) *Service {
	return &Service{
		Catalog:  cat,
		Validate: validator.New(),
		Log:      log,
	}
}

// Quote validates the request against the option catalog, computes the unit
// price and returns the line item ready for the cart. The returned unit
// price is a frozen snapshot; re-pricing requires a new quote.
func (s *Service) Quote(ctx context.Context, req Request) (cart.LineItem, error) {
	if s == nil || s.Catalog == nil {
		return cart.LineItem{}, errors.New("quote service not configured")
	}
	if s.Validate != nil {
		if err := s.Validate.Struct(req); err != nil {
			s.count(categoryLabel(req.Category), "invalid")
			code, message := common.CodeInvalidConfiguration, "quote request is incomplete"
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					switch fe.Field() {
					case "Quantity":
						code, message = common.CodeInvalidQuantity, "quantity must be at least one"
					case "BaseRate":
						code, message = common.CodeInvalidBasePrice, "base price must be a positive amount"
					}
				}
			}
			return cart.LineItem{}, common.NewAppError(
				code,
				message,
				http.StatusUnprocessableEntity,
				fmt.Errorf("validate request: %w", err),
			)
		}
	}
	category, err := catalog.ParseCategory(req.Category)
	if err != nil {
		s.count(categoryLabel(req.Category), "invalid")
		return cart.LineItem{}, toAppError(err)
	}
	opts, err := s.Catalog.Resolve(category, req.Selections)
	if err != nil {
		s.count(string(category), "invalid")
		return cart.LineItem{}, toAppError(err)
	}
	price, err := pricing.Calculate(category, req.BaseRate, opts, req.Dimensions)
	if err != nil {
		s.count(string(category), "invalid")
		return cart.LineItem{}, toAppError(err)
	}
	// The item owns its option map and dimensions; later mutation of the
	// request must not rewrite an already quoted configuration.
	dims := req.Dimensions
	if dims != nil {
		d := *dims
		dims = &d
	}
	item := cart.LineItem{
		ID:         uuid.New(),
		ProductRef: req.ProductRef,
		Category:   category,
		Options:    maps.Clone(req.Selections),
		Dims:       dims,
		Quantity:   req.Quantity,
		UnitPrice:  price,
	}
	s.count(string(category), "ok")
	if obs.QuoteAmount != nil {
		obs.QuoteAmount.WithLabelValues(string(category)).Observe(price.InexactFloat64())
	}
	s.Log.Debug().
		Str("product", req.ProductRef).
		Str("category", string(category)).
		Str("unit_price", pricing.Present(price).String()).
		Msg("quote_priced")
	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicQuotePriced, item.ID, map[string]any{
			"productRef": item.ProductRef,
			"category":   string(item.Category),
			"unitPrice":  pricing.Present(price).String(),
			"quantity":   item.Quantity,
		})
	}
	return item, nil
}

func (s *Service) count(category, result string) {
	if obs.QuoteTotal == nil {
		return
	}
	obs.QuoteTotal.WithLabelValues(category, result).Inc()
}

// categoryLabel collapses anything that is not a known category onto one
// fixed label so user input never widens metric cardinality.
func categoryLabel(raw string) string {
	if c, err := catalog.ParseCategory(raw); err == nil {
		return string(c)
	}
	return "unknown"
}

// toAppError maps engine sentinel errors onto the shared error taxonomy for
// the transport layer.
func toAppError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidBasePrice):
		return common.NewAppError(common.CodeInvalidBasePrice, "base price must be a positive amount", http.StatusUnprocessableEntity, err)
	case errors.Is(err, pricing.ErrInvalidDimensions):
		return common.NewAppError(common.CodeInvalidDimensions, "dimensions must be positive", http.StatusUnprocessableEntity, err)
	case errors.Is(err, pricing.ErrInvalidConfiguration),
		errors.Is(err, catalog.ErrInvalidConfiguration),
		errors.Is(err, catalog.ErrUnknownCategory):
		return common.NewAppError(common.CodeInvalidConfiguration, "selected options do not match the product", http.StatusUnprocessableEntity, err)
	}
	return err
}

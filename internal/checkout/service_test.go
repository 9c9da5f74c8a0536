package checkout_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/timberworks/storefront-engine/internal/cart"
	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/checkout"
	"github.com/timberworks/storefront-engine/internal/events"
	"github.com/timberworks/storefront-engine/internal/pricing"
	"github.com/timberworks/storefront-engine/internal/shipping"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type recordingNotifier struct {
	seen []events.Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev events.Event) error {
	r.seen = append(r.seen, ev)
	return nil
}

func newCartService() *cart.Service {
	policy := shipping.Policy{
		FreeThreshold:     dec("500"),
		MinCharge:         dec("35"),
		RatePerCubicMeter: dec("50"),
	}
	return cart.NewService(dec("0.2"), policy, zerolog.Nop())
}

func TestCreateSnapshotsAndClearsCart(t *testing.T) {
	t.Parallel()

	carts := newCartService()
	_, err := carts.AddItem("owner-1", cart.LineItem{
		ProductRef: "oak-beam",
		Category:   catalog.CategoryOakBeam,
		Options:    map[string]string{"finish": "sawn", "profile": "square-edge"},
		Dims: &pricing.Dimensions{
			LengthM:     dec("1"),
			WidthMM:     dec("250"),
			ThicknessMM: dec("200"),
		},
		Quantity:  1,
		UnitPrice: dec("450"),
	})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	svc := &checkout.Service{
		Carts:    carts,
		Events:   &events.Bus{Notifiers: []events.Notifier{notifier}},
		Currency: "GBP",
		Log:      zerolog.Nop(),
	}

	order, err := svc.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Equal(t, "PENDING_PAYMENT", order.Status)
	require.Equal(t, "GBP", order.Currency)
	require.Len(t, order.Items, 1)
	require.Equal(t, "450.00", order.Subtotal.StringFixed(2))
	require.Equal(t, "90.00", order.VAT.StringFixed(2))
	require.Equal(t, "35.00", order.Shipping.StringFixed(2))
	require.Equal(t, "575.00", order.Total.StringFixed(2))

	// The cart is emptied on success.
	c, err := carts.EnsureCart("owner-1")
	require.NoError(t, err)
	require.True(t, c.Empty())

	require.Len(t, notifier.seen, 1)
	require.Equal(t, events.TopicCartCheckedOut, notifier.seen[0].Topic)
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	carts := newCartService()
	_, err := carts.EnsureCart("owner-1")
	require.NoError(t, err)

	svc := &checkout.Service{Carts: carts, Currency: "GBP", Log: zerolog.Nop()}
	_, err = svc.Create(context.Background(), "owner-1")
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestCreateUnknownOwner(t *testing.T) {
	t.Parallel()

	svc := &checkout.Service{Carts: newCartService(), Currency: "GBP", Log: zerolog.Nop()}
	_, err := svc.Create(context.Background(), "nobody")
	require.ErrorIs(t, err, cart.ErrNotFound)
}

func TestOrderIsImmutableSnapshot(t *testing.T) {
	t.Parallel()

	carts := newCartService()
	_, err := carts.AddItem("owner-1", cart.LineItem{
		ProductRef: "garage-3bay",
		Category:   catalog.CategoryGarage,
		Options:    map[string]string{"roofType": "apex"},
		Quantity:   1,
		UnitPrice:  dec("1150"),
	})
	require.NoError(t, err)

	svc := &checkout.Service{Carts: carts, Currency: "GBP", Log: zerolog.Nop()}
	order, err := svc.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	// New cart activity must not reach the snapshot.
	_, err = carts.AddItem("owner-1", cart.LineItem{
		ProductRef: "garage-3bay",
		Category:   catalog.CategoryGarage,
		Options:    map[string]string{"roofType": "apex"},
		Quantity:   3,
		UnitPrice:  dec("1150"),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, 1, order.Items[0].Quantity)
}

package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/pricing"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestGarageRoofMultiplier(t *testing.T) {
	t.Parallel()

	opts := []catalog.SelectedOption{
		{Key: "roofType", Value: "apex", Effect: catalog.MultiplierFactor("1.15")},
	}
	price, err := pricing.Calculate(catalog.CategoryGarage, dec("1000"), opts, nil)
	require.NoError(t, err)
	require.True(t, price.Equal(dec("1150")), "got %s", price)
}

func TestStructureCombinedEffects(t *testing.T) {
	t.Parallel()

	opts := []catalog.SelectedOption{
		{Key: "roofType", Effect: catalog.MultiplierFactor("1.15")},
		{Key: "doorStyle", Effect: catalog.FlatModifier("380")},
		{Key: "posts", Effect: catalog.PerUnitRate("45", 6)},
	}
	price, err := pricing.Calculate(catalog.CategoryGarage, dec("1000"), opts, nil)
	require.NoError(t, err)
	// 1000 x 1.15 + 380 + 45 x 6
	require.True(t, price.Equal(dec("1800")), "got %s", price)
}

func TestBeamVolumePricing(t *testing.T) {
	t.Parallel()

	dims := &pricing.Dimensions{
		LengthM:     dec("3"),
		WidthMM:     dec("150"),
		ThicknessMM: dec("75"),
	}
	price, err := pricing.Calculate(catalog.CategoryOakBeam, dec("800"), nil, dims)
	require.NoError(t, err)
	// 0.03375 m3 x 800
	require.True(t, price.Equal(dec("27")), "got %s", price)
}

func TestBeamFinishAndProfile(t *testing.T) {
	t.Parallel()

	dims := &pricing.Dimensions{
		LengthM:     dec("3"),
		WidthMM:     dec("150"),
		ThicknessMM: dec("75"),
	}
	opts := []catalog.SelectedOption{
		{Key: "finish", Effect: catalog.PerUnitRate("12", 0)},
		{Key: "profile", Effect: catalog.FlatModifier("25")},
	}
	price, err := pricing.Calculate(catalog.CategoryOakBeam, dec("800"), opts, dims)
	require.NoError(t, err)
	// 27 + 12/m x 3m + 25
	require.True(t, price.Equal(dec("88")), "got %s", price)
}

func TestFlooringGradeFactor(t *testing.T) {
	t.Parallel()

	dims := &pricing.Dimensions{AreaM2: dec("20"), ThicknessMM: dec("20")}
	opts := []catalog.SelectedOption{
		{Key: "grade", Effect: catalog.MultiplierFactor("1.25")},
	}
	price, err := pricing.Calculate(catalog.CategoryOakFlooring, dec("40"), opts, dims)
	require.NoError(t, err)
	// 20 m2 x 40 x 1.25
	require.True(t, price.Equal(dec("1000")), "got %s", price)
}

func TestFlooringFinishPerArea(t *testing.T) {
	t.Parallel()

	dims := &pricing.Dimensions{AreaM2: dec("20"), ThicknessMM: dec("20")}
	opts := []catalog.SelectedOption{
		{Key: "grade", Effect: catalog.MultiplierFactor("1.0")},
		{Key: "finish", Effect: catalog.PerUnitRate("6.5", 0)},
	}
	price, err := pricing.Calculate(catalog.CategoryOakFlooring, dec("40"), opts, dims)
	require.NoError(t, err)
	// 800 + 6.50/m2 x 20 m2
	require.True(t, price.Equal(dec("930")), "got %s", price)
}

func TestCalculateDeterministic(t *testing.T) {
	t.Parallel()

	dims := &pricing.Dimensions{
		LengthM:     dec("4.2"),
		WidthMM:     dec("225"),
		ThicknessMM: dec("100"),
	}
	opts := []catalog.SelectedOption{
		{Key: "finish", Effect: catalog.PerUnitRate("18", 0)},
		{Key: "profile", Effect: catalog.FlatModifier("60")},
	}
	first, err := pricing.Calculate(catalog.CategoryOakBeam, dec("845.50"), opts, dims)
	require.NoError(t, err)
	second, err := pricing.Calculate(catalog.CategoryOakBeam, dec("845.50"), opts, dims)
	require.NoError(t, err)
	require.True(t, first.Equal(second))
}

func TestCalculateRejectsNonPositiveBase(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"0", "-10"} {
		_, err := pricing.Calculate(catalog.CategoryGarage, dec(base), nil, nil)
		require.ErrorIs(t, err, pricing.ErrInvalidBasePrice, "base %s", base)
	}
}

func TestCalculateRejectsBadDimensions(t *testing.T) {
	t.Parallel()

	_, err := pricing.Calculate(catalog.CategoryOakBeam, dec("800"), nil, nil)
	require.ErrorIs(t, err, pricing.ErrInvalidDimensions)

	_, err = pricing.Calculate(catalog.CategoryOakBeam, dec("800"), nil, &pricing.Dimensions{
		LengthM: dec("3"), WidthMM: dec("0"), ThicknessMM: dec("75"),
	})
	require.ErrorIs(t, err, pricing.ErrInvalidDimensions)

	_, err = pricing.Calculate(catalog.CategoryOakFlooring, dec("40"), nil, &pricing.Dimensions{
		AreaM2: dec("-5"), ThicknessMM: dec("20"),
	})
	require.ErrorIs(t, err, pricing.ErrInvalidDimensions)
}

func TestCalculateRejectsMalformedEffects(t *testing.T) {
	t.Parallel()

	// A structure per-unit option must declare its unit count.
	opts := []catalog.SelectedOption{
		{Key: "posts", Effect: catalog.PerUnitRate("45", 0)},
	}
	_, err := pricing.Calculate(catalog.CategoryGarage, dec("1000"), opts, nil)
	require.ErrorIs(t, err, pricing.ErrInvalidConfiguration)

	_, err = pricing.Calculate(catalog.CategoryGarage, dec("1000"), []catalog.SelectedOption{{Key: "roofType"}}, nil)
	require.ErrorIs(t, err, pricing.ErrInvalidConfiguration)
}

func TestCalculateClampsNegativeResult(t *testing.T) {
	t.Parallel()

	opts := []catalog.SelectedOption{
		{Key: "promo", Effect: catalog.FlatModifier("-2500")},
	}
	price, err := pricing.Calculate(catalog.CategoryGarage, dec("1000"), opts, nil)
	require.NoError(t, err)
	require.True(t, price.IsZero(), "got %s", price)
}

func TestPresentRoundsToMinorUnits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "27.00", pricing.Present(dec("27")).StringFixed(2))
	require.Equal(t, "88.13", pricing.Present(dec("88.125")).StringFixed(2))
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	items := []pricing.Item{
		{Qty: 2, UnitPrice: dec("100")},
		{Qty: 1, UnitPrice: dec("250")},
		{Qty: 0, UnitPrice: dec("999")},
	}
	totals := pricing.Compute(items, dec("0.2"), dec("35"))
	require.True(t, totals.Subtotal.Equal(dec("450")))
	require.True(t, totals.VAT.Equal(dec("90")))
	require.True(t, totals.Shipping.Equal(dec("35")))
	require.True(t, totals.Total.Equal(dec("575")))
}

func TestComputeClampsNegativeShipping(t *testing.T) {
	t.Parallel()

	totals := pricing.Compute([]pricing.Item{{Qty: 1, UnitPrice: dec("100")}}, dec("0.2"), dec("-5"))
	require.True(t, totals.Shipping.IsZero())
	require.True(t, totals.Total.Equal(dec("120")))
}

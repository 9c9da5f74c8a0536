package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/obs"
	"github.com/timberworks/storefront-engine/internal/pricing"
)

// Policy holds the externally configured delivery parameters. Values come
// from the settings source and are read-only inputs to the estimator.
type Policy struct {
	// FreeThreshold is the subtotal at or above which delivery is free.
	FreeThreshold decimal.Decimal
	// MinCharge is the floor applied to any nonzero volumetric charge.
	MinCharge decimal.Decimal
	// RatePerCubicMeter prices the shipped volume of dimensional goods.
	RatePerCubicMeter decimal.Decimal
}

// DefaultPolicy mirrors the configuration defaults.
func DefaultPolicy() Policy {
	return Policy{
		FreeThreshold:     decimal.NewFromInt(500),
		MinCharge:         decimal.NewFromInt(35),
		RatePerCubicMeter: decimal.NewFromInt(50),
	}
}

// Item is the slice of a cart line the estimator needs.
type Item struct {
	Category catalog.Category
	Quantity int
	Dims     *pricing.Dimensions
}

// ItemVolume returns the shipped volume of one line in cubic metres.
// Fixed-footprint structures contribute zero: their delivery is bundled into
// the unit price.
func ItemVolume(it Item) decimal.Decimal {
	if it.Quantity <= 0 || it.Dims == nil {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(int64(it.Quantity))
	switch it.Category {
	case catalog.CategoryOakBeam:
		return it.Dims.BeamVolumeM3().Mul(qty)
	case catalog.CategoryOakFlooring:
		return it.Dims.FlooringVolumeM3().Mul(qty)
	}
	return decimal.Zero
}

// Estimate computes the delivery charge for the given lines and subtotal.
// The free-shipping threshold is boundary inclusive and takes precedence over
// the volumetric calculation; an empty cart costs nothing.
func Estimate(items []Item, subtotal decimal.Decimal, p Policy) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		countEstimate("free")
		return decimal.Zero
	}
	var volume decimal.Decimal
	for _, it := range items {
		volume = volume.Add(ItemVolume(it))
	}
	if volume.IsZero() || volume.IsNegative() {
		countEstimate("no_volume")
		return decimal.Zero
	}
	cost := volume.Mul(p.RatePerCubicMeter)
	if cost.LessThan(p.MinCharge) {
		cost = p.MinCharge
	}
	if cost.IsNegative() {
		countEstimate("no_volume")
		return decimal.Zero
	}
	countEstimate("charged")
	return cost
}

func countEstimate(outcome string) {
	if obs.ShippingEstimateTotal == nil {
		return
	}
	obs.ShippingEstimateTotal.WithLabelValues(outcome).Inc()
}

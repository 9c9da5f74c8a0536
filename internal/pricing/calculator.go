package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/catalog"
)

var (
	// ErrInvalidBasePrice is returned when the base price or rate is missing,
	// zero or negative.
	ErrInvalidBasePrice = errors.New("invalid base price")
	// ErrInvalidDimensions is returned when a dimensional category is priced
	// without all positive dimension fields.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidConfiguration is returned when an option carries a malformed
	// pricing effect. Selections are validated upstream by the catalog; this
	// is a defensive re-check only.
	ErrInvalidConfiguration = errors.New("invalid option configuration")
)

// Money is a monetary value with exact decimal arithmetic. Rounding to the
// currency's two minor-unit places happens only at presentation time.
type Money = decimal.Decimal

var mmPerMetre = decimal.NewFromInt(1000)

// Dimensions carries the physical measurements for dimensional categories.
// Cross sections are in millimetres, beam length in metres, floor area in
// square metres.
type Dimensions struct {
	LengthM     decimal.Decimal
	WidthMM     decimal.Decimal
	ThicknessMM decimal.Decimal
	AreaM2      decimal.Decimal
}

// BeamVolumeM3 returns length x width x thickness in cubic metres.
func (d Dimensions) BeamVolumeM3() decimal.Decimal {
	return d.LengthM.Mul(d.WidthMM.Div(mmPerMetre)).Mul(d.ThicknessMM.Div(mmPerMetre))
}

// FlooringVolumeM3 returns area x thickness in cubic metres.
func (d Dimensions) FlooringVolumeM3() decimal.Decimal {
	return d.AreaM2.Mul(d.ThicknessMM.Div(mmPerMetre))
}

func (d Dimensions) validateBeam() error {
	if !d.LengthM.IsPositive() {
		return fmt.Errorf("beam length must be positive: %w", ErrInvalidDimensions)
	}
	if !d.WidthMM.IsPositive() || !d.ThicknessMM.IsPositive() {
		return fmt.Errorf("beam cross-section must be positive: %w", ErrInvalidDimensions)
	}
	return nil
}

func (d Dimensions) validateFlooring() error {
	if !d.AreaM2.IsPositive() {
		return fmt.Errorf("floor area must be positive: %w", ErrInvalidDimensions)
	}
	if !d.ThicknessMM.IsPositive() {
		return fmt.Errorf("board thickness must be positive: %w", ErrInvalidDimensions)
	}
	return nil
}

// Calculate maps a category, its base price (or per-m3/per-m2 rate), the
// resolved option selection and any dimensions onto a unit price. The result
// is deterministic, never negative and kept at full precision.
func Calculate(category catalog.Category, baseOrRate decimal.Decimal, opts []catalog.SelectedOption, dims *Dimensions) (Money, error) {
	if !baseOrRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("base price %s: %w", baseOrRate, ErrInvalidBasePrice)
	}
	if err := checkEffects(category, opts); err != nil {
		return decimal.Zero, err
	}
	var price decimal.Decimal
	switch category {
	case catalog.CategoryGarage, catalog.CategoryGazebo, catalog.CategoryPorch:
		price = structurePrice(baseOrRate, opts)
	case catalog.CategoryOakBeam:
		if dims == nil {
			return decimal.Zero, fmt.Errorf("beam dimensions required: %w", ErrInvalidDimensions)
		}
		if err := dims.validateBeam(); err != nil {
			return decimal.Zero, err
		}
		price = dimensionalPrice(baseOrRate, opts, dims.BeamVolumeM3(), dims.LengthM)
	case catalog.CategoryOakFlooring:
		if dims == nil {
			return decimal.Zero, fmt.Errorf("flooring dimensions required: %w", ErrInvalidDimensions)
		}
		if err := dims.validateFlooring(); err != nil {
			return decimal.Zero, err
		}
		price = dimensionalPrice(baseOrRate, opts, dims.AreaM2, dims.AreaM2)
	default:
		return decimal.Zero, fmt.Errorf("%q: %w", category, catalog.ErrUnknownCategory)
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	return price, nil
}

// structurePrice applies base x product(multipliers) + sum(flats) +
// sum(rate x declared unit count) for fixed-footprint structures.
func structurePrice(base decimal.Decimal, opts []catalog.SelectedOption) decimal.Decimal {
	price := base
	for _, opt := range opts {
		if opt.Effect.Kind == catalog.EffectMultiplier {
			price = price.Mul(opt.Effect.Factor)
		}
	}
	for _, opt := range opts {
		switch opt.Effect.Kind {
		case catalog.EffectFlat:
			price = price.Add(opt.Effect.Amount)
		case catalog.EffectPerUnit:
			price = price.Add(opt.Effect.Amount.Mul(decimal.NewFromInt(int64(opt.Effect.UnitCount))))
		}
	}
	return price
}

// dimensionalPrice applies quantity x rate x product(multipliers) +
// sum(perUnitRate x perUnitQty) + sum(flats). For beams quantity is the
// volume and per-unit rates run per metre; for flooring both are the area.
func dimensionalPrice(rate decimal.Decimal, opts []catalog.SelectedOption, quantity, perUnitQty decimal.Decimal) decimal.Decimal {
	price := quantity.Mul(rate)
	for _, opt := range opts {
		if opt.Effect.Kind == catalog.EffectMultiplier {
			price = price.Mul(opt.Effect.Factor)
		}
	}
	for _, opt := range opts {
		switch opt.Effect.Kind {
		case catalog.EffectFlat:
			price = price.Add(opt.Effect.Amount)
		case catalog.EffectPerUnit:
			price = price.Add(opt.Effect.Amount.Mul(perUnitQty))
		}
	}
	return price
}

// checkEffects defensively rejects malformed effects that slipped past the
// catalog, e.g. a structure per-unit option without a declared unit count.
func checkEffects(category catalog.Category, opts []catalog.SelectedOption) error {
	for _, opt := range opts {
		switch opt.Effect.Kind {
		case catalog.EffectFlat:
		case catalog.EffectMultiplier:
			if !opt.Effect.Factor.IsPositive() {
				return fmt.Errorf("option %q multiplier must be positive: %w", opt.Key, ErrInvalidConfiguration)
			}
		case catalog.EffectPerUnit:
			if !category.Dimensional() && opt.Effect.UnitCount <= 0 {
				return fmt.Errorf("option %q has no declared unit count: %w", opt.Key, ErrInvalidConfiguration)
			}
		default:
			return fmt.Errorf("option %q has no pricing effect: %w", opt.Key, ErrInvalidConfiguration)
		}
	}
	return nil
}

// Present rounds a full-precision amount to the currency's minor unit.
func Present(amount Money) Money {
	return amount.Round(2)
}

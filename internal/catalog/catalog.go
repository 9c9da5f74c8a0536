package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCategory is returned when a category string has no catalog entry.
	ErrUnknownCategory = errors.New("unknown product category")
	// ErrInvalidConfiguration is returned when a selection does not match the
	// category's declared option groups.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Category identifies a product family and determines which option groups and
// pricing formula apply. The set is fixed; new categories require code changes.
type Category string

const (
	CategoryGarage      Category = "GARAGE"
	CategoryGazebo      Category = "GAZEBO"
	CategoryPorch       Category = "PORCH"
	CategoryOakBeam     Category = "OAK_BEAM"
	CategoryOakFlooring Category = "OAK_FLOORING"
)

// ParseCategory maps a raw category string onto the known enumeration.
func ParseCategory(value string) (Category, error) {
	switch Category(value) {
	case CategoryGarage, CategoryGazebo, CategoryPorch, CategoryOakBeam, CategoryOakFlooring:
		return Category(value), nil
	}
	return "", fmt.Errorf("%q: %w", value, ErrUnknownCategory)
}

// Valid reports whether the category belongs to the fixed enumeration.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// Dimensional reports whether products in this category are priced and shipped
// by physical dimensions rather than a fixed footprint.
func (c Category) Dimensional() bool {
	return c == CategoryOakBeam || c == CategoryOakFlooring
}

// EffectKind discriminates the pricing effect attached to a choice.
type EffectKind string

const (
	// EffectFlat adds a fixed amount to the price once.
	EffectFlat EffectKind = "FLAT"
	// EffectPerUnit adds rate multiplied by a unit count. For fixed-footprint
	// structures the count is a constant declared with the option; for
	// dimensional categories it is derived from the product dimensions.
	EffectPerUnit EffectKind = "PER_UNIT"
	// EffectMultiplier scales the running price by a factor.
	EffectMultiplier EffectKind = "MULTIPLIER"
)

// Effect is the single pricing effect carried by a choice. Constructors below
// are the only way effects are built, which keeps the one-effect-per-option
// invariant structural.
type Effect struct {
	Kind EffectKind
	// Amount holds the flat modifier or the per-unit rate.
	Amount decimal.Decimal
	// Factor holds the multiplier for EffectMultiplier.
	Factor decimal.Decimal
	// UnitCount is the fixed unit count for structure per-unit options.
	// Zero means the count comes from the product dimensions.
	UnitCount int
}

// FlatModifier declares an effect that adds amount once.
func FlatModifier(amount string) Effect {
	return Effect{Kind: EffectFlat, Amount: decimal.RequireFromString(amount)}
}

// PerUnitRate declares an effect that adds rate for each of units. Pass zero
// units for dimensional categories where the count follows from dimensions.
func PerUnitRate(rate string, units int) Effect {
	return Effect{Kind: EffectPerUnit, Amount: decimal.RequireFromString(rate), UnitCount: units}
}

// MultiplierFactor declares an effect that scales the price by factor.
func MultiplierFactor(factor string) Effect {
	return Effect{Kind: EffectMultiplier, Factor: decimal.RequireFromString(factor)}
}

// Choice is one selectable value within an option group.
type Choice struct {
	Value  string
	Label  string
	Effect Effect
}

// Group is an ordered set of mutually exclusive choices for one option key.
type Group struct {
	Key      string
	Label    string
	Required bool
	Choices  []Choice
}

// Choice returns the choice with the given value, if declared.
func (g Group) Choice(value string) (Choice, bool) {
	for _, c := range g.Choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}

// SelectedOption is a resolved selection carrying its pricing effect.
type SelectedOption struct {
	Key    string
	Value  string
	Label  string
	Effect Effect
}

// Catalog holds the ordered option groups per category. Read-mostly: built
// once (statically or from the admin store) and treated as an immutable
// snapshot for the duration of a pricing operation.
type Catalog map[Category][]Group

// Groups returns the declared option groups for the category in order.
func (c Catalog) Groups(category Category) ([]Group, error) {
	groups, ok := c[category]
	if !ok {
		return nil, fmt.Errorf("%q: %w", category, ErrUnknownCategory)
	}
	return groups, nil
}

// ValidateSelection checks that every required group has exactly one selected
// value drawn from its declared choices and that no unknown keys are present.
func (c Catalog) ValidateSelection(category Category, selections map[string]string) error {
	groups, err := c.Groups(category)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(selections))
	for _, g := range groups {
		value, ok := selections[g.Key]
		if !ok {
			if g.Required {
				return fmt.Errorf("missing option %q: %w", g.Key, ErrInvalidConfiguration)
			}
			continue
		}
		seen[g.Key] = true
		if _, ok := g.Choice(value); !ok {
			return fmt.Errorf("option %q has no choice %q: %w", g.Key, value, ErrInvalidConfiguration)
		}
	}
	for key := range selections {
		if !seen[key] {
			return fmt.Errorf("unknown option %q: %w", key, ErrInvalidConfiguration)
		}
	}
	return nil
}

// Resolve validates the selection and returns the chosen options with their
// pricing effects, in declared group order.
func (c Catalog) Resolve(category Category, selections map[string]string) ([]SelectedOption, error) {
	if err := c.ValidateSelection(category, selections); err != nil {
		return nil, err
	}
	groups, err := c.Groups(category)
	if err != nil {
		return nil, err
	}
	resolved := make([]SelectedOption, 0, len(selections))
	for _, g := range groups {
		value, ok := selections[g.Key]
		if !ok {
			continue
		}
		choice, _ := g.Choice(value)
		resolved = append(resolved, SelectedOption{
			Key:    g.Key,
			Value:  choice.Value,
			Label:  choice.Label,
			Effect: choice.Effect,
		})
	}
	return resolved, nil
}

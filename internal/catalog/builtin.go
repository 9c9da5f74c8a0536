package catalog

// Builtin returns the stock option catalog for the timber ranges. An
// admin-editable catalog loaded from the persistence layer can replace it at
// wiring time; the validation and resolution rules are identical.
func Builtin() Catalog {
	return Catalog{
		CategoryGarage: {
			{
				Key: "roofType", Label: "Roof type", Required: true,
				Choices: []Choice{
					{Value: "pent", Label: "Pent roof", Effect: MultiplierFactor("1.0")},
					{Value: "apex", Label: "Apex roof", Effect: MultiplierFactor("1.15")},
					{Value: "hipped", Label: "Hipped roof", Effect: MultiplierFactor("1.3")},
				},
			},
			{
				Key: "doorStyle", Label: "Garage doors", Required: true,
				Choices: []Choice{
					{Value: "open-bay", Label: "Open bay", Effect: FlatModifier("0")},
					{Value: "side-hinged", Label: "Side-hinged doors", Effect: FlatModifier("380")},
					{Value: "sectional", Label: "Sectional door", Effect: FlatModifier("920")},
				},
			},
			{
				Key: "cladding", Label: "Cladding", Required: true,
				Choices: []Choice{
					{Value: "featheredge", Label: "Featheredge", Effect: FlatModifier("0")},
					{Value: "shiplap", Label: "Shiplap", Effect: FlatModifier("260")},
					{Value: "cedar", Label: "Cedar", Effect: FlatModifier("540")},
				},
			},
			{
				// Three-bay frame: six principal posts.
				Key: "posts", Label: "Frame posts", Required: true,
				Choices: []Choice{
					{Value: "softwood", Label: "Softwood posts", Effect: PerUnitRate("0", 6)},
					{Value: "oak", Label: "Green oak posts", Effect: PerUnitRate("45", 6)},
				},
			},
		},
		CategoryGazebo: {
			{
				Key: "roofType", Label: "Roof type", Required: true,
				Choices: []Choice{
					{Value: "felt", Label: "Felt shingle", Effect: MultiplierFactor("1.0")},
					{Value: "cedar-shingle", Label: "Cedar shingle", Effect: MultiplierFactor("1.2")},
					{Value: "thatched", Label: "Thatched", Effect: MultiplierFactor("1.4")},
				},
			},
			{
				Key: "sides", Label: "Side panels", Required: true,
				Choices: []Choice{
					{Value: "open", Label: "Open sides", Effect: PerUnitRate("0", 4)},
					{Value: "half-panel", Label: "Half panels", Effect: PerUnitRate("35", 4)},
					{Value: "full-panel", Label: "Full panels", Effect: PerUnitRate("80", 4)},
				},
			},
			{
				Key: "posts", Label: "Corner posts", Required: true,
				Choices: []Choice{
					{Value: "standard", Label: "Standard posts", Effect: PerUnitRate("0", 4)},
					{Value: "turned-oak", Label: "Turned oak posts", Effect: PerUnitRate("55", 4)},
				},
			},
		},
		CategoryPorch: {
			{
				Key: "roofType", Label: "Roof type", Required: true,
				Choices: []Choice{
					{Value: "lean-to", Label: "Lean-to roof", Effect: MultiplierFactor("1.0")},
					{Value: "gable", Label: "Gable roof", Effect: MultiplierFactor("1.1")},
				},
			},
			{
				Key: "posts", Label: "Porch posts", Required: true,
				Choices: []Choice{
					{Value: "square", Label: "Square posts", Effect: PerUnitRate("0", 2)},
					{Value: "turned", Label: "Turned posts", Effect: PerUnitRate("48", 2)},
				},
			},
			{
				Key: "balustrade", Label: "Balustrade", Required: false,
				Choices: []Choice{
					{Value: "spindle", Label: "Spindle balustrade", Effect: FlatModifier("150")},
					{Value: "solid-oak", Label: "Solid oak balustrade", Effect: FlatModifier("290")},
				},
			},
		},
		CategoryOakBeam: {
			{
				// Per-unit rates apply per metre of beam length.
				Key: "finish", Label: "Surface finish", Required: true,
				Choices: []Choice{
					{Value: "sawn", Label: "Sawn", Effect: PerUnitRate("0", 0)},
					{Value: "planed", Label: "Planed all round", Effect: PerUnitRate("12", 0)},
					{Value: "sandblasted", Label: "Sandblasted", Effect: PerUnitRate("18", 0)},
				},
			},
			{
				Key: "profile", Label: "Edge profile", Required: true,
				Choices: []Choice{
					{Value: "square-edge", Label: "Square edge", Effect: FlatModifier("0")},
					{Value: "chamfered", Label: "Chamfered", Effect: FlatModifier("25")},
					{Value: "hand-hewn", Label: "Hand hewn", Effect: FlatModifier("60")},
				},
			},
		},
		CategoryOakFlooring: {
			{
				Key: "grade", Label: "Board grade", Required: true,
				Choices: []Choice{
					{Value: "rustic", Label: "Rustic grade", Effect: MultiplierFactor("0.85")},
					{Value: "character", Label: "Character grade", Effect: MultiplierFactor("1.0")},
					{Value: "select", Label: "Select grade", Effect: MultiplierFactor("1.25")},
				},
			},
			{
				// Per-unit rates apply per square metre of floor area.
				Key: "finish", Label: "Factory finish", Required: true,
				Choices: []Choice{
					{Value: "unfinished", Label: "Unfinished", Effect: PerUnitRate("0", 0)},
					{Value: "oiled", Label: "Hardwax oiled", Effect: PerUnitRate("6.5", 0)},
					{Value: "lacquered", Label: "Lacquered", Effect: PerUnitRate("8", 0)},
				},
			},
		},
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/catalog"
	"github.com/timberworks/storefront-engine/internal/config"
	"github.com/timberworks/storefront-engine/internal/obs"
	"github.com/timberworks/storefront-engine/internal/pricing"
	"github.com/timberworks/storefront-engine/internal/quote"
	"github.com/timberworks/storefront-engine/internal/shipping"
)

// sample holds one representative configuration per category for the printed list.
type sample struct {
	name string
	req  quote.Request
}

func main() {
	format := flag.String("format", "", "log format override (json|console)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logFormat := cfg.LogFormat
	if *format != "" {
		logFormat = *format
	}
	logger := obs.NewLogger(logFormat, cfg.LogLevel)
	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	svc := quote.NewService(catalog.Builtin(), logger)
	policy := cfg.ShippingPolicy()

	samples := []sample{
		{
			name: "Three-bay garage, apex roof, oak posts",
			req: quote.Request{
				ProductRef: "garage-3bay",
				Category:   string(catalog.CategoryGarage),
				BaseRate:   decimal.NewFromInt(9800),
				Selections: map[string]string{
					"roofType":  "apex",
					"doorStyle": "side-hinged",
					"cladding":  "featheredge",
					"posts":     "oak",
				},
				Quantity: 1,
			},
		},
		{
			name: "Gazebo, cedar shingle, half panels",
			req: quote.Request{
				ProductRef: "gazebo-3m",
				Category:   string(catalog.CategoryGazebo),
				BaseRate:   decimal.NewFromInt(3200),
				Selections: map[string]string{
					"roofType": "cedar-shingle",
					"sides":    "half-panel",
					"posts":    "standard",
				},
				Quantity: 1,
			},
		},
		{
			name: "Porch, gable roof, turned posts",
			req: quote.Request{
				ProductRef: "porch-classic",
				Category:   string(catalog.CategoryPorch),
				BaseRate:   decimal.NewFromInt(1450),
				Selections: map[string]string{
					"roofType":   "gable",
					"posts":      "turned",
					"balustrade": "spindle",
				},
				Quantity: 1,
			},
		},
		{
			name: "Oak beam 3m x 150mm x 75mm, planed",
			req: quote.Request{
				ProductRef: "oak-beam",
				Category:   string(catalog.CategoryOakBeam),
				BaseRate:   decimal.NewFromInt(800),
				Selections: map[string]string{
					"finish":  "planed",
					"profile": "chamfered",
				},
				Dimensions: &pricing.Dimensions{
					LengthM:     decimal.NewFromInt(3),
					WidthMM:     decimal.NewFromInt(150),
					ThicknessMM: decimal.NewFromInt(75),
				},
				Quantity: 1,
			},
		},
		{
			name: "Oak flooring 20m2, select grade, oiled",
			req: quote.Request{
				ProductRef: "oak-flooring",
				Category:   string(catalog.CategoryOakFlooring),
				BaseRate:   decimal.NewFromInt(40),
				Selections: map[string]string{
					"grade":  "select",
					"finish": "oiled",
				},
				Dimensions: &pricing.Dimensions{
					AreaM2:      decimal.NewFromInt(20),
					ThicknessMM: decimal.NewFromInt(20),
				},
				Quantity: 1,
			},
		},
	}

	ctx := context.Background()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "CONFIGURATION\tUNIT PRICE (%s)\tDELIVERY\n", cfg.Currency)
	for _, smp := range samples {
		item, err := svc.Quote(ctx, smp.req)
		if err != nil {
			logger.Error().Err(err).Str("sample", smp.name).Msg("quote failed")
			continue
		}
		ship := shipping.Estimate(
			[]shipping.Item{{Category: item.Category, Quantity: item.Quantity, Dims: item.Dims}},
			item.UnitPrice,
			policy,
		)
		delivery := "included"
		if item.Category.Dimensional() {
			delivery = pricing.Present(ship).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", smp.name, pricing.Present(item.UnitPrice).String(), delivery)
	}
	if err := w.Flush(); err != nil {
		logger.Error().Err(err).Msg("flush output")
	}
}

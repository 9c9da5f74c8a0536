package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timberworks/storefront-engine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"VAT_RATE":                "",
		"FREE_DELIVERY_THRESHOLD": "",
		"MIN_DELIVERY_CHARGE":     "",
		"SHIPPING_RATE_PER_M3":    "",
		"CURRENCY":                "",
		"METRICS_NAMESPACE":       "",
	})
	require.NoError(t, err)
	require.Equal(t, "0.2", cfg.VATRate.String())
	require.Equal(t, "500", cfg.FreeDeliveryThreshold.String())
	require.Equal(t, "35", cfg.MinDeliveryCharge.String())
	require.Equal(t, "50", cfg.ShippingRatePerM3.String())
	require.Equal(t, "GBP", cfg.Currency)
	require.Equal(t, "storefront", cfg.MetricsNamespace)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"VAT_RATE":                "0.05",
		"FREE_DELIVERY_THRESHOLD": "750",
		"MIN_DELIVERY_CHARGE":     "42.50",
		"SHIPPING_RATE_PER_M3":    "64",
		"CURRENCY":                "EUR",
	})
	require.NoError(t, err)
	require.Equal(t, "0.05", cfg.VATRate.String())
	require.Equal(t, "750", cfg.FreeDeliveryThreshold.String())
	require.Equal(t, "42.5", cfg.MinDeliveryCharge.String())
	require.Equal(t, "64", cfg.ShippingRatePerM3.String())
	require.Equal(t, "EUR", cfg.Currency)
}

func TestLoadRejectsVATOutOfRange(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"VAT_RATE": "1.2"})
	require.Error(t, err)

	_, err = config.LoadForTests(map[string]string{"VAT_RATE": "-0.1"})
	require.Error(t, err)
}

func TestLoadRejectsNegativePolicyValues(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"VAT_RATE":            "0.2",
		"MIN_DELIVERY_CHARGE": "-5",
	})
	require.Error(t, err)
}

func TestLoadRejectsUnparseableDecimal(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"SHIPPING_RATE_PER_M3": "fifty"})
	require.Error(t, err)
}

func TestShippingPolicy(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"FREE_DELIVERY_THRESHOLD": "600",
		"MIN_DELIVERY_CHARGE":     "30",
		"SHIPPING_RATE_PER_M3":    "55",
	})
	require.NoError(t, err)
	policy := cfg.ShippingPolicy()
	require.Equal(t, "600", policy.FreeThreshold.String())
	require.Equal(t, "30", policy.MinCharge.String())
	require.Equal(t, "55", policy.RatePerCubicMeter.String())
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/timberworks/storefront-engine/internal/shipping"
)

// Config holds engine configuration loaded from the environment. The
// shipping policy and VAT rate are the settings-source inputs of the engine;
// everything else is ambient (logging, metrics).
type Config struct {
	AppEnv                string
	LogFormat             string
	LogLevel              string
	MetricsNamespace      string
	Currency              string
	VATRate               decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	MinDeliveryCharge     decimal.Decimal
	ShippingRatePerM3     decimal.Decimal
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	vatRate, err := parseDecimal(k.String("VAT_RATE"), "0.2")
	if err != nil {
		return nil, fmt.Errorf("VAT_RATE: %w", err)
	}
	freeThreshold, err := parseDecimal(k.String("FREE_DELIVERY_THRESHOLD"), "500")
	if err != nil {
		return nil, fmt.Errorf("FREE_DELIVERY_THRESHOLD: %w", err)
	}
	minCharge, err := parseDecimal(k.String("MIN_DELIVERY_CHARGE"), "35")
	if err != nil {
		return nil, fmt.Errorf("MIN_DELIVERY_CHARGE: %w", err)
	}
	shippingRate, err := parseDecimal(k.String("SHIPPING_RATE_PER_M3"), "50")
	if err != nil {
		return nil, fmt.Errorf("SHIPPING_RATE_PER_M3: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		LogFormat:             valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:              valueOrDefault(k.String("LOG_LEVEL"), "info"),
		MetricsNamespace:      valueOrDefault(k.String("METRICS_NAMESPACE"), "storefront"),
		Currency:              valueOrDefault(k.String("CURRENCY"), "GBP"),
		VATRate:               vatRate,
		FreeDeliveryThreshold: freeThreshold,
		MinDeliveryCharge:     minCharge,
		ShippingRatePerM3:     shippingRate,
	}

	if cfg.VATRate.IsNegative() || cfg.VATRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("VAT_RATE must be within [0,1): %s", cfg.VATRate)
	}
	if cfg.FreeDeliveryThreshold.IsNegative() {
		return nil, fmt.Errorf("FREE_DELIVERY_THRESHOLD must not be negative: %s", cfg.FreeDeliveryThreshold)
	}
	if cfg.MinDeliveryCharge.IsNegative() {
		return nil, fmt.Errorf("MIN_DELIVERY_CHARGE must not be negative: %s", cfg.MinDeliveryCharge)
	}
	if cfg.ShippingRatePerM3.IsNegative() {
		return nil, fmt.Errorf("SHIPPING_RATE_PER_M3 must not be negative: %s", cfg.ShippingRatePerM3)
	}

	return cfg, nil
}

// ShippingPolicy assembles the delivery policy consumed by the estimator.
func (c *Config) ShippingPolicy() shipping.Policy {
	return shipping.Policy{
		FreeThreshold:     c.FreeDeliveryThreshold,
		MinCharge:         c.MinDeliveryCharge,
		RatePerCubicMeter: c.ShippingRatePerM3,
	}
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDecimal(value, fallback string) (decimal.Decimal, error) {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := decimal.NewFromString(base)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", base, err)
	}
	return d, nil
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}

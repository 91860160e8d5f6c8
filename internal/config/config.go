// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderFeedMarker marks a feed URL that was never filled in.
const PlaceholderFeedMarker = "YOUR_GOOGLE_SHEET"

type Config struct {
	HTTP      HTTPConfig
	Feed      FeedConfig
	Notifier  NotifierConfig
	Payment   PaymentConfig
	Checkout  CheckoutConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Chaos     ChaosConfig
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
}

type FeedConfig struct {
	URL     string
	Timeout time.Duration
}

// Configured reports whether the feed points at a real sheet.
func (c FeedConfig) Configured() bool {
	url := strings.TrimSpace(c.URL)
	return url != "" && !strings.Contains(url, PlaceholderFeedMarker)
}

type NotifierConfig struct {
	URL           string
	Timeout       time.Duration
	RatePerMinute float64
}

func (c NotifierConfig) Configured() bool {
	return strings.TrimSpace(c.URL) != ""
}

type PaymentConfig struct {
	DomesticCountry string
	PayeeID         string
	PayeeName       string
	Currency        string
}

// UPIConfigured reports whether domestic buyers can be given a payee to pay.
func (c PaymentConfig) UPIConfigured() bool {
	return strings.TrimSpace(c.PayeeID) != ""
}

type CheckoutConfig struct {
	DismissAfter time.Duration
}

type LogConfig struct {
	Level       string
	Development bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type ChaosConfig struct {
	NotifierFailureRate float64
	NotifierLatency     time.Duration
}

func (c ChaosConfig) Enabled() bool {
	return c.NotifierFailureRate > 0 || c.NotifierLatency > 0
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	feedTimeout, err := durationWithDefault("FEED_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	notifierTimeout, err := durationWithDefault("NOTIFIER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	notifierRate, err := floatWithDefault("NOTIFIER_RATE_PER_MIN", 30)
	if err != nil {
		return nil, err
	}
	dismissAfter, err := durationWithDefault("CHECKOUT_DISMISS_AFTER", 3*time.Second)
	if err != nil {
		return nil, err
	}
	development, err := boolWithDefault("LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}
	failureRate, err := floatWithDefault("CHAOS_NOTIFIER_FAILURE_RATE", 0)
	if err != nil {
		return nil, err
	}
	latency, err := durationWithDefault("CHAOS_NOTIFIER_LATENCY", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:           stringWithDefault("PORT", "8080"),
			AllowedOrigins: listWithDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Feed: FeedConfig{
			URL:     stringWithDefault("FEED_URL", ""),
			Timeout: feedTimeout,
		},
		Notifier: NotifierConfig{
			URL:           stringWithDefault("NOTIFIER_URL", ""),
			Timeout:       notifierTimeout,
			RatePerMinute: notifierRate,
		},
		Payment: PaymentConfig{
			DomesticCountry: stringWithDefault("DOMESTIC_COUNTRY", "India"),
			PayeeID:         stringWithDefault("UPI_ID", ""),
			PayeeName:       stringWithDefault("UPI_PAYEE_NAME", ""),
			Currency:        stringWithDefault("CURRENCY", "INR"),
		},
		Checkout: CheckoutConfig{
			DismissAfter: dismissAfter,
		},
		Log: LogConfig{
			Level:       stringWithDefault("LOG_LEVEL", "info"),
			Development: development,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: stringWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  stringWithDefault("OTEL_SERVICE_NAME", "bookstall-storefront"),
		},
		Chaos: ChaosConfig{
			NotifierFailureRate: failureRate,
			NotifierLatency:     latency,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Notifier.RatePerMinute <= 0 {
		return fmt.Errorf("NOTIFIER_RATE_PER_MIN must be positive, got %v", c.Notifier.RatePerMinute)
	}
	if c.Chaos.NotifierFailureRate < 0 || c.Chaos.NotifierFailureRate > 1 {
		return fmt.Errorf("CHAOS_NOTIFIER_FAILURE_RATE must be within [0, 1], got %v", c.Chaos.NotifierFailureRate)
	}
	if strings.TrimSpace(c.Payment.DomesticCountry) == "" {
		return fmt.Errorf("DOMESTIC_COUNTRY must not be empty")
	}
	return nil
}

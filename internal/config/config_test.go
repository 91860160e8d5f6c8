package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FEED_URL", "")
	t.Setenv("NOTIFIER_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "India", cfg.Payment.DomesticCountry)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 3*time.Second, cfg.Checkout.DismissAfter)
	assert.False(t, cfg.Feed.Configured())
	assert.False(t, cfg.Notifier.Configured())
	assert.False(t, cfg.Chaos.Enabled())
	assert.False(t, cfg.Payment.UPIConfigured())
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FEED_URL", "https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv")
	t.Setenv("NOTIFIER_URL", "https://hooks.example.com/order")
	t.Setenv("NOTIFIER_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHAOS_NOTIFIER_FAILURE_RATE", "0.5")
	t.Setenv("UPI_ID", "bookstall@upi")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.True(t, cfg.Feed.Configured())
	assert.True(t, cfg.Payment.UPIConfigured())
	assert.True(t, cfg.Notifier.Configured())
	assert.Equal(t, 2*time.Second, cfg.Notifier.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Chaos.Enabled())
}

func TestPlaceholderFeedIsNotConfigured(t *testing.T) {
	feed := FeedConfig{URL: "https://docs.google.com/YOUR_GOOGLE_SHEET_LINK"}
	assert.False(t, feed.Configured())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		t.Setenv("FEED_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("failure rate", func(t *testing.T) {
		t.Setenv("CHAOS_NOTIFIER_FAILURE_RATE", "2")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("rate", func(t *testing.T) {
		t.Setenv("NOTIFIER_RATE_PER_MIN", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

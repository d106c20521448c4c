package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppConfigDefaults(t *testing.T) {
	cfg := GetAppConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, "applied_internships.json", cfg.AppliedFilePath)
	assert.Equal(t, 5, cfg.MaxListings)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.IsDevelopment())
}

func TestGetAppConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MAX_LISTINGS", "3")
	t.Setenv("HEADLESS", "false")

	cfg := GetAppConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3, cfg.MaxListings)
	assert.False(t, cfg.Headless)
}

func TestGetAppConfigRejectsBadListingCap(t *testing.T) {
	t.Setenv("MAX_LISTINGS", "-2")

	assert.Equal(t, 5, GetAppConfig().MaxListings)
}

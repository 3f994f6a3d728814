package config

import (
	"os"
	"testing"
	"time"

	"github.com/palletform/binpack3d/internal/packing"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.NotEmpty(t, cfg.Catalog.Boxes)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CACHE_SIZE", "500")
		_ = os.Setenv("CACHE_TTL", "10m")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})

	t.Run("parses custom CORS origins alongside defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", " https://example.com , https://app.example.com ")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://example.com")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://app.example.com")
	})

	t.Run("parses a box catalog from JSON", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("BOX_CATALOG", `[{"ID":"TEST","OuterLength":100,"OuterWidth":100,"OuterDepth":100,"InnerLength":90,"InnerWidth":90,"InnerDepth":90,"EmptyWeight":50,"MaxPayload":5000}]`)
		defer os.Clearenv()

		cfg := Load()

		assert.Len(t, cfg.Catalog.Boxes, 1)
		assert.Equal(t, packing.BoxID("TEST"), cfg.Catalog.Boxes[0].ID)
	})

	t.Run("falls back to the default catalog on malformed JSON", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("BOX_CATALOG", `not json`)
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, defaultCatalog(), cfg.Catalog.Boxes)
	})
}

//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/palletform/binpack3d/config"
	"github.com/palletform/binpack3d/internal/packing"
	"github.com/stretchr/testify/assert"
)

func testCatalog() []packing.Box {
	return []packing.Box{{
		ID: "SMALL", OuterLength: 220, OuterWidth: 220, OuterDepth: 220,
		InnerLength: 200, InnerWidth: 200, InnerDepth: 200,
		EmptyWeight: 500, MaxPayload: 10000,
	}}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name: "creates service with caching disabled",
			cfg: config.Config{
				Catalog: config.CatalogConfig{Boxes: testCatalog()},
				Cache:   config.CacheConfig{Size: 0},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Packer)
			},
		},
		{
			name: "creates service with cache enabled",
			cfg: config.Config{
				Catalog: config.CatalogConfig{Boxes: testCatalog()},
				Cache:   config.CacheConfig{Size: 1000, TTL: 5 * time.Minute},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Packer)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.cfg)
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}

func TestServiceComponents_Packer(t *testing.T) {
	components := InitializeServices(config.Config{
		Catalog: config.CatalogConfig{Boxes: testCatalog()},
		Cache:   config.CacheConfig{Size: 100, TTL: time.Minute},
	})

	assert.NotNil(t, components.Packer)

	items := []packing.Item{{ID: "item-1", Length: 100, Width: 100, Depth: 100, Weight: 500}}
	quantities := packing.Quantities{"SMALL": 1}

	result, err := components.Packer.Pack(items, quantities)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Count())
}

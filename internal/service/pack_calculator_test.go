package service

import (
	"testing"
	"time"

	"github.com/palletform/binpack3d/internal/packing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoxes() []packing.Box {
	return []packing.Box{
		{
			ID:           "SMALL",
			OuterLength:  220, OuterWidth: 220, OuterDepth: 220,
			InnerLength:  200, InnerWidth: 200, InnerDepth: 200,
			EmptyWeight:  500, MaxPayload: 10000,
		},
		{
			ID:           "LARGE",
			OuterLength:  420, OuterWidth: 420, OuterDepth: 420,
			InnerLength:  400, InnerWidth: 400, InnerDepth: 400,
			EmptyWeight:  1200, MaxPayload: 40000,
		},
	}
}

func testQuantities() packing.Quantities {
	return packing.Quantities{"SMALL": 5, "LARGE": 5}
}

func testItems(n int) []packing.Item {
	items := make([]packing.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, packing.Item{
			ID: "item", Length: 100, Width: 100, Depth: 100, Weight: 1000,
		})
	}
	return items
}

func TestNewPackingService(t *testing.T) {
	svc := NewPackingService(testBoxes())
	assert.NotNil(t, svc.packer)
	assert.Nil(t, svc.cache)
}

func TestNewPackingService_WithCache(t *testing.T) {
	svc := NewPackingService(testBoxes(), WithCache(100, 5*time.Minute))
	assert.NotNil(t, svc.cache)
}

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Debug(msg string, _ map[string]any) { r.messages = append(r.messages, msg) }
func (r *recordingSink) Info(string, map[string]any)        {}
func (r *recordingSink) Warn(string, map[string]any)        {}

func TestNewPackingService_WithLogSink(t *testing.T) {
	sink := &recordingSink{}
	svc := NewPackingService(testBoxes(), WithLogSink(sink))

	_, err := svc.Pack(testItems(1), testQuantities())
	require.NoError(t, err)

	assert.Contains(t, sink.messages, "packed box")
}

func TestPackingService_Pack(t *testing.T) {
	svc := NewPackingService(testBoxes())

	result, err := svc.Pack(testItems(1), testQuantities())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count())
	assert.Equal(t, "SMALL", string(result.Boxes[0].Box.ID))
}

func TestPackingService_Pack_CachesResult(t *testing.T) {
	svc := NewPackingService(testBoxes(), WithCache(100, 5*time.Minute))

	items := testItems(1)
	quantities := testQuantities()

	result1, err := svc.Pack(items, quantities)
	require.NoError(t, err)

	result2, err := svc.Pack(items, quantities)
	require.NoError(t, err)

	assert.Equal(t, result1, result2)

	_, found := svc.cache.Get(svc.cacheKey(items, quantities, "volume"))
	assert.True(t, found)
}

func TestPackingService_PackBalanced(t *testing.T) {
	svc := NewPackingService(testBoxes())

	result, err := svc.PackBalanced(testItems(2), testQuantities())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count())
}

func TestPackingService_Pack_PropagatesError(t *testing.T) {
	svc := NewPackingService(testBoxes())

	tooBig := []packing.Item{{ID: "huge", Length: 10000, Width: 10000, Depth: 10000, Weight: 1}}
	_, err := svc.Pack(tooBig, testQuantities())
	assert.Error(t, err)
}

func TestPackingService_InvalidateCache(t *testing.T) {
	svc := NewPackingService(testBoxes(), WithCache(100, 5*time.Minute))

	items := testItems(1)
	quantities := testQuantities()

	_, err := svc.Pack(items, quantities)
	require.NoError(t, err)

	svc.InvalidateCache()

	_, found := svc.cache.Get(svc.cacheKey(items, quantities, "volume"))
	assert.False(t, found)
}

func TestPackingService_CacheKey_StableUnderItemOrder(t *testing.T) {
	svc := NewPackingService(testBoxes())

	a := []packing.Item{{ID: "1", Length: 10, Width: 10, Depth: 10, Weight: 1}, {ID: "2", Length: 20, Width: 20, Depth: 20, Weight: 2}}
	b := []packing.Item{a[1], a[0]}

	assert.Equal(t, svc.cacheKey(a, testQuantities(), "volume"), svc.cacheKey(b, testQuantities(), "volume"))
}

func TestPackingService_CacheKey_DiffersByMode(t *testing.T) {
	svc := NewPackingService(testBoxes())
	items := testItems(1)

	volumeKey := svc.cacheKey(items, testQuantities(), "volume")
	balancedKey := svc.cacheKey(items, testQuantities(), "balanced")

	assert.NotEqual(t, volumeKey, balancedKey)
}

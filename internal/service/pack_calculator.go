package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/palletform/binpack3d/internal/packing"
	"github.com/palletform/binpack3d/internal/service/cache"
)

// Packing defines the interface for bin-packing operations exposed to handlers.
type Packing interface {
	Pack(items []packing.Item, quantities packing.Quantities) (packing.PackedBoxList, error)
	PackBalanced(items []packing.Item, quantities packing.Quantities) (packing.PackedBoxList, error)
	// InvalidateCache clears the result cache (useful when the box catalog changes).
	InvalidateCache()
}

// Option configures a PackingService.
type Option func(*PackingService)

// PackingService implements Packing on top of an internal/packing.Packer,
// memoizing results by a content hash of the request.
type PackingService struct {
	packer *packing.Packer
	cache  cache.Cache
}

// NewPackingService creates a new PackingService for the given box catalog.
func NewPackingService(boxes []packing.Box, opts ...Option) *PackingService {
	s := &PackingService{
		packer: packing.NewPacker(boxes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *PackingService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *PackingService) {
		s.cache = c
	}
}

// WithPacker allows injecting a preconfigured *packing.Packer, overriding
// the catalog passed to NewPackingService.
func WithPacker(p *packing.Packer) Option {
	return func(s *PackingService) {
		s.packer = p
	}
}

// WithLogSink installs a diagnostic sink on the underlying packer, so
// box-selection, shrink, and redistribution events surface through
// whatever sink the caller provides.
func WithLogSink(sink packing.LogSink) Option {
	return func(s *PackingService) {
		s.packer.SetLogSink(sink)
	}
}

// Pack packs items into boxes chosen for minimal box count and volume waste.
func (s *PackingService) Pack(items []packing.Item, quantities packing.Quantities) (packing.PackedBoxList, error) {
	return s.run(items, quantities, "volume")
}

// PackBalanced packs items and then rebalances weight across the chosen boxes.
func (s *PackingService) PackBalanced(items []packing.Item, quantities packing.Quantities) (packing.PackedBoxList, error) {
	return s.run(items, quantities, "balanced")
}

func (s *PackingService) run(items []packing.Item, quantities packing.Quantities, mode string) (packing.PackedBoxList, error) {
	key := s.cacheKey(items, quantities, mode)

	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			return result, nil
		}
	}

	var (
		result packing.PackedBoxList
		err    error
	)
	if mode == "balanced" {
		result, err = s.packer.PackWithWeightBalance(items, quantities)
	} else {
		result, err = s.packer.Pack(items, quantities)
	}
	if err != nil {
		return packing.PackedBoxList{}, err
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	return result, nil
}

// cacheItem is a JSON-safe projection of packing.Item. Item.PackingConstraint
// is a func value, which encoding/json cannot marshal at all (func-typed
// fields always yield an UnsupportedTypeError, nil or not), so it is
// represented here only by whether one is present.
type cacheItem struct {
	ID              string                 `json:"id"`
	Length          int                    `json:"length"`
	Width           int                    `json:"width"`
	Depth           int                    `json:"depth"`
	Weight          int                    `json:"weight"`
	AllowedRotation packing.RotationPolicy `json:"allowed_rotation"`
	HasConstraint   bool                   `json:"has_constraint"`
}

// cacheKey hashes the normalized request (mode, items and quantities) so that
// equivalent requests, regardless of item ordering, share a cache entry. The
// service's box catalog is not part of the key.
func (s *PackingService) cacheKey(items []packing.Item, quantities packing.Quantities, mode string) string {
	sorted := make([]packing.Item, len(items))
	copy(sorted, items)
	packing.SortItems(sorted)

	projected := make([]cacheItem, len(sorted))
	for i, it := range sorted {
		projected[i] = cacheItem{
			ID:              it.ID,
			Length:          it.Length,
			Width:           it.Width,
			Depth:           it.Depth,
			Weight:          it.Weight,
			AllowedRotation: it.AllowedRotation,
			HasConstraint:   it.PackingConstraint != nil,
		}
	}

	payload := struct {
		Mode       string             `json:"mode"`
		Items      []cacheItem        `json:"items"`
		Quantities packing.Quantities `json:"quantities"`
	}{
		Mode:       mode,
		Items:      projected,
		Quantities: quantities,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// InvalidateCache clears the result cache.
func (s *PackingService) InvalidateCache() {
	if s.cache != nil {
		if cacheWithClear, ok := s.cache.(interface{ Clear() }); ok {
			cacheWithClear.Clear()
		}
	}
}

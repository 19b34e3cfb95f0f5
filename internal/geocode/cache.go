// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/wneessen/ambience/internal/weather"
)

// coordPrecision is the precision used to quantize coordinates (0.01 degrees ≈ 1.1 km)
const coordPrecision = 1e-2

// cellKey identifies a grid cell of coordPrecision size
type cellKey struct {
	lat, lon int32
}

type cachedPlace struct {
	place  Place
	expiry time.Time
}

// CachedGeocoder keeps reverse lookups per grid cell in memory. Places that were not
// found expire after ttlMiss, found places after ttlHit. Failed lookups are not cached.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	cells map[cellKey]cachedPlace
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		now:     time.Now,
		cells:   make(map[cellKey]cachedPlace),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Reverse(ctx context.Context, coords weather.Coordinate) (Place, error) {
	key := cellOf(coords)
	if place, ok := c.lookup(key); ok {
		return place, nil
	}

	place, err := c.coder.Reverse(ctx, coords)
	if err != nil {
		return place, err
	}
	c.store(key, place)
	return place, nil
}

func (c *CachedGeocoder) lookup(key cellKey) (Place, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cells[key]
	if !ok || !c.now().Before(entry.expiry) {
		return Place{}, false
	}
	place := entry.place
	place.CacheHit = true
	return place, true
}

// store caches the place and drops all expired cells
func (c *CachedGeocoder) store(key cellKey, place Place) {
	ttl := c.ttlHit
	if !place.Found {
		ttl = c.ttlMiss
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for cell, entry := range c.cells {
		if !now.Before(entry.expiry) {
			delete(c.cells, cell)
		}
	}
	c.cells[key] = cachedPlace{place: place, expiry: now.Add(ttl)}
}

func cellOf(coords weather.Coordinate) cellKey {
	return cellKey{
		lat: int32(math.Round(coords.Lat / coordPrecision)),
		lon: int32(math.Round(coords.Lon / coordPrecision)),
	}
}

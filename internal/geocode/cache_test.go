// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wneessen/ambience/internal/weather"
)

const (
	testHitTTL  = time.Hour
	testMissTTL = time.Minute
)

var testCoords = weather.Coordinate{Lat: 50.9375, Lon: 6.9603}

var testPlace = Place{
	DisplayName: "Dom, Domkloster, Altstadt-Nord, Innenstadt, Köln, Nordrhein-Westfalen, 50667, Deutschland",
	City:        "Köln",
	State:       "Nordrhein-Westfalen",
	Country:     "Deutschland",
	CountryCode: "de",
}

type mockCoder struct {
	calls int
}

func (c *mockCoder) Name() string { return "mock" }

func (c *mockCoder) Reverse(_ context.Context, coords weather.Coordinate) (Place, error) {
	c.calls++
	place := testPlace
	place.Latitude = coords.Lat
	place.Longitude = coords.Lon
	if coords.Lat == testCoords.Lat && coords.Lon == testCoords.Lon {
		place.Found = true
	}
	if coords.Lat == 1 && coords.Lon == -1 {
		return place, errors.New("lookup intentionally failed")
	}
	return place, nil
}

func testCachedGeocoder(now *time.Time) (*CachedGeocoder, *mockCoder) {
	mock := &mockCoder{}
	coder := NewCachedGeocoder(mock, testHitTTL, testMissTTL)
	coder.now = func() time.Time { return *now }
	return coder, mock
}

func TestNewCachedGeocoder(t *testing.T) {
	t.Run("a new geocoder should be returned", func(t *testing.T) {
		coder := NewCachedGeocoder(&mockCoder{}, testHitTTL, testMissTTL)
		if coder == nil {
			t.Fatal("expected a non-nil geocoder")
		}
		if coder.Name() != "geocoder cache using mock" {
			t.Errorf("expected geocoder name to be 'geocoder cache using mock', got %q", coder.Name())
		}
	})
}

func TestCachedGeocoder_Reverse(t *testing.T) {
	t.Run("a resolved place should be returned", func(t *testing.T) {
		now := time.Now()
		coder, _ := testCachedGeocoder(&now)
		place, err := coder.Reverse(t.Context(), testCoords)
		if err != nil {
			t.Fatal(err)
		}
		if !place.Found {
			t.Fatal("expected place to be found")
		}
		if place.CacheHit {
			t.Fatal("expected cache miss")
		}
		if place.Name() != "Köln" {
			t.Errorf("expected place name to be %q, got %q", "Köln", place.Name())
		}
		if place.Latitude != testCoords.Lat || place.Longitude != testCoords.Lon {
			t.Errorf("expected coordinates %s, got %f,%f", testCoords, place.Latitude, place.Longitude)
		}
	})
	t.Run("fetching results twice should hit the cache", func(t *testing.T) {
		now := time.Now()
		coder, mock := testCachedGeocoder(&now)
		if _, err := coder.Reverse(t.Context(), testCoords); err != nil {
			t.Fatal(err)
		}
		place, err := coder.Reverse(t.Context(), testCoords)
		if err != nil {
			t.Fatal(err)
		}
		if !place.CacheHit {
			t.Error("expected cached result")
		}
		if mock.calls != 1 {
			t.Errorf("expected 1 lookup, got %d", mock.calls)
		}
	})
	t.Run("fetching a very close place should still hit the cache", func(t *testing.T) {
		now := time.Now()
		coder, _ := testCachedGeocoder(&now)
		if _, err := coder.Reverse(t.Context(), testCoords); err != nil {
			t.Fatal(err)
		}
		place, err := coder.Reverse(t.Context(), weather.Coordinate{Lat: testCoords.Lat + 0.002, Lon: testCoords.Lon - 0.002})
		if err != nil {
			t.Fatal(err)
		}
		if !place.CacheHit {
			t.Error("expected cached result")
		}
	})
	t.Run("fetching an unknown place causes a cache miss", func(t *testing.T) {
		now := time.Now()
		coder, _ := testCachedGeocoder(&now)
		place, err := coder.Reverse(t.Context(), weather.Coordinate{Lat: 2, Lon: -2})
		if err != nil {
			t.Fatal(err)
		}
		if place.Found {
			t.Fatal("expected place to be not found")
		}
		if place.CacheHit {
			t.Error("expected cache miss")
		}
	})
	t.Run("failing lookups are returned and not cached", func(t *testing.T) {
		now := time.Now()
		coder, mock := testCachedGeocoder(&now)
		for range 2 {
			if _, err := coder.Reverse(t.Context(), weather.Coordinate{Lat: 1, Lon: -1}); err == nil {
				t.Fatal("expected an error")
			}
		}
		if mock.calls != 2 {
			t.Errorf("expected 2 lookups, got %d", mock.calls)
		}
	})
	t.Run("cache should not trigger on expired TTL", func(t *testing.T) {
		now := time.Now()
		coder, _ := testCachedGeocoder(&now)
		if _, err := coder.Reverse(t.Context(), testCoords); err != nil {
			t.Fatal(err)
		}
		now = now.Add(testHitTTL * 2)
		place, err := coder.Reverse(t.Context(), testCoords)
		if err != nil {
			t.Fatal(err)
		}
		if place.CacheHit {
			t.Error("expected cache miss")
		}
	})
	t.Run("misses expire with their own TTL", func(t *testing.T) {
		now := time.Now()
		coder, mock := testCachedGeocoder(&now)
		unknown := weather.Coordinate{Lat: 2, Lon: -2}
		if _, err := coder.Reverse(t.Context(), unknown); err != nil {
			t.Fatal(err)
		}
		now = now.Add(testMissTTL + time.Second)
		if _, err := coder.Reverse(t.Context(), unknown); err != nil {
			t.Fatal(err)
		}
		if mock.calls != 2 {
			t.Errorf("expected 2 lookups, got %d", mock.calls)
		}
	})
}

func TestCachedGeocoder_store(t *testing.T) {
	t.Run("expired cells are dropped when storing", func(t *testing.T) {
		now := time.Now()
		coder, _ := testCachedGeocoder(&now)
		if _, err := coder.Reverse(t.Context(), weather.Coordinate{Lat: 2, Lon: -2}); err != nil {
			t.Fatal(err)
		}
		now = now.Add(testMissTTL * 2)
		if _, err := coder.Reverse(t.Context(), testCoords); err != nil {
			t.Fatal(err)
		}
		if len(coder.cells) != 1 {
			t.Errorf("expected 1 cached cell, got %d", len(coder.cells))
		}
	})
}

func TestPlace_Name(t *testing.T) {
	tests := []struct {
		name  string
		place Place
		want  string
	}{
		{"city wins", testPlace, "Köln"},
		{"state without city", Place{State: "Bayern", Country: "Deutschland"}, "Bayern"},
		{"country only", Place{Country: "Deutschland", DisplayName: "x"}, "Deutschland"},
		{"display name as last resort", Place{DisplayName: "Atlantic Ocean"}, "Atlantic Ocean"},
		{"empty place", Place{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.place.Name(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

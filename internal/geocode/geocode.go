// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves coordinates into human readable place names.
package geocode

import (
	"context"

	"github.com/wneessen/ambience/internal/weather"
)

type Place struct {
	Found       bool
	CacheHit    bool
	Latitude    float64
	Longitude   float64
	DisplayName string
	City        string
	State       string
	Country     string
	CountryCode string
}

// Name returns the most specific name of the place that is known.
func (p Place) Name() string {
	switch {
	case p.City != "":
		return p.City
	case p.State != "":
		return p.State
	case p.Country != "":
		return p.Country
	}
	return p.DisplayName
}

type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, coords weather.Coordinate) (Place, error)
}

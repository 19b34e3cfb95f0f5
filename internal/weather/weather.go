// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/wneessen/ambience/internal/vartype"
)

// Provider is implemented by each weather API backend. Temperatures are always
// delivered in Fahrenheit; conversion happens at the display boundary.
type Provider interface {
	Name() string
	GetWeather(ctx context.Context, coords Coordinate) (*Reading, error)
	GetForecast(ctx context.Context, coords Coordinate) ([]ForecastSample, error)
}

// Reading is a single current-weather observation as delivered by a provider.
type Reading struct {
	Location     string
	Country      string
	TemperatureF float64
	Humidity     float64
	Pressure     float64
	WindSpeedMPH float64

	// HasCondition is false if the provider sent no condition entry at all.
	HasCondition         bool
	ConditionMain        string
	ConditionDescription string
	ConditionID          int

	Sunrise vartype.VarInt64
	Sunset  vartype.VarInt64

	ObservedAt time.Time
}

// ForecastSample is one entry of a multi-day forecast feed, typically in 3-hour steps.
type ForecastSample struct {
	Timestamp            int64
	TemperatureF         float64
	ConditionMain        string
	ConditionDescription string
	ConditionIcon        string
}

// Time returns the sample timestamp in loc.
func (s ForecastSample) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(s.Timestamp, 0).In(loc)
}

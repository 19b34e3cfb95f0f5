// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package display turns a raw provider reading into display-ready strings.
package display

import (
	"time"

	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/period"
	"github.com/wneessen/ambience/internal/units"
	"github.com/wneessen/ambience/internal/vartype"
	"github.com/wneessen/ambience/internal/weather"
)

const (
	ErrorLocation        = "Error"
	ErrorCondition       = "Unable to load"
	UnavailableCondition = "Weather data unavailable"
	UnknownLocation      = "Unknown"
	DefaultLocation      = "Unknown Location"
)

// Weather is the display-ready form of a reading. It is rebuilt on every reading.
type Weather struct {
	Location    string
	Temperature string
	Unit        string
	Condition   string
	IsError     bool
	Sunrise     string
	Sunset      string
}

// Result bundles the display record with the classifications theming and
// background selection are based on.
type Result struct {
	Weather Weather
	Period  period.Period
	Type    condition.Type
}

// Build converts a reading into display data using the user's unit preferences.
// A non-nil err or a nil reading yields the error state, a reading without any
// condition the "unavailable" state. Times are rendered in now's location, and
// the time period is classified against now. Build never fails.
func Build(reading *weather.Reading, err error, prefs units.Preferences, now time.Time) Result {
	unit := prefs.Temperature.Symbol()

	if err != nil || reading == nil {
		return Result{
			Weather: Weather{
				Location:    ErrorLocation,
				Temperature: vartype.Placeholder,
				Unit:        unit,
				Condition:   ErrorCondition,
				IsError:     true,
				Sunrise:     vartype.Placeholder,
				Sunset:      vartype.Placeholder,
			},
			Period: period.FromHour(now.Hour()),
			Type:   condition.Clear,
		}
	}

	result := Result{Period: period.Classify(now, reading.Sunrise, reading.Sunset)}
	if !reading.HasCondition || (reading.ConditionMain == "" && reading.ConditionDescription == "") {
		location := reading.Location
		if location == "" {
			location = UnknownLocation
		}
		result.Weather = Weather{
			Location:    location,
			Temperature: vartype.Placeholder,
			Unit:        unit,
			Condition:   UnavailableCondition,
			IsError:     true,
			Sunrise:     vartype.Placeholder,
			Sunset:      vartype.Placeholder,
		}
		result.Type = condition.Clear
		return result
	}

	location := reading.Location
	if location == "" {
		location = DefaultLocation
	}
	text := reading.ConditionDescription
	if text == "" {
		text = reading.ConditionMain
	}

	loc := now.Location()
	result.Weather = Weather{
		Location:    location,
		Temperature: units.FormatTemperature(reading.TemperatureF, units.Fahrenheit, prefs.Temperature),
		Unit:        unit,
		Condition:   condition.Capitalize(text),
		Sunrise:     units.FormatOptionalClock(reading.Sunrise, prefs.TimeFormat, loc),
		Sunset:      units.FormatOptionalClock(reading.Sunset, prefs.TimeFormat, loc),
	}
	result.Type = condition.Classify(text)
	return result
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package units converts temperatures, wind speeds and clock times between the
// units a user can choose in the settings.
package units

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Temperature is a temperature unit.
type Temperature string

// Speed is a wind speed unit.
type Speed string

// TimeFormat selects 12 or 24 hour clock rendering.
type TimeFormat string

const (
	Fahrenheit Temperature = "F"
	Celsius    Temperature = "C"

	MPH Speed = "mph"
	KMH Speed = "kmh"
	MS  Speed = "ms"

	Clock12h TimeFormat = "12h"
	Clock24h TimeFormat = "24h"
)

var validate = validator.New()

// Preferences are the user's display unit settings.
type Preferences struct {
	Temperature Temperature `validate:"oneof=F C"`
	Speed       Speed       `validate:"oneof=mph kmh ms"`
	TimeFormat  TimeFormat  `validate:"oneof=12h 24h"`
}

// DefaultPreferences returns metric units with a 24h clock.
func DefaultPreferences() Preferences {
	return Preferences{Temperature: Celsius, Speed: KMH, TimeFormat: Clock24h}
}

// Validate checks that every preference holds a known unit.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid unit preferences: %w", err)
	}
	return nil
}

// Symbol returns the display unit for a temperature, e.g. "°C".
func (t Temperature) Symbol() string {
	return "°" + string(t)
}

// Label returns the display label for a wind speed unit.
func (s Speed) Label() string {
	switch s {
	case KMH:
		return "km/h"
	case MS:
		return "m/s"
	default:
		return "mph"
	}
}

// ParseTemperature parses a temperature unit from a settings value.
func ParseTemperature(val string) (Temperature, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	case "c", "celsius", "metric":
		return Celsius, nil
	}
	return "", fmt.Errorf("unknown temperature unit: %q", val)
}

// ParseSpeed parses a wind speed unit from a settings value.
func ParseSpeed(val string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "mph":
		return MPH, nil
	case "kmh", "km/h", "kph":
		return KMH, nil
	case "ms", "m/s":
		return MS, nil
	}
	return "", fmt.Errorf("unknown speed unit: %q", val)
}

// ParseTimeFormat parses a clock format from a settings value.
func ParseTimeFormat(val string) (TimeFormat, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "12h", "12":
		return Clock12h, nil
	case "24h", "24":
		return Clock24h, nil
	}
	return "", fmt.Errorf("unknown time format: %q", val)
}

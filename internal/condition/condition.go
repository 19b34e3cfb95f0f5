// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package condition maps free-text weather condition descriptions onto a small
// set of weather types.
package condition

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is a coarse weather type.
type Type int

const (
	Clear Type = iota
	Rain
	Snow
	Fog
	Cloudy
)

var typeNames = map[Type]string{
	Clear:  "clear",
	Rain:   "rain",
	Snow:   "snow",
	Fog:    "fog",
	Cloudy: "cloudy",
}

// String returns the lower-case name of the weather type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type rule struct {
	keywords []string
	kind     Type
}

// rules are evaluated in order and the first match wins. Precipitation comes
// before clouds, and the multi-word cloud phrases come before the generic
// "clouds", since descriptions like "thunderstorm with rain" or
// "broken clouds" contain several keywords.
var rules = []rule{
	{[]string{"thunderstorm"}, Rain},
	{[]string{"drizzle"}, Rain},
	{[]string{"rain"}, Rain},
	{[]string{"snow"}, Snow},
	{[]string{"mist", "fog", "haze", "smoke", "dust", "sand"}, Fog},
	{[]string{"overcast"}, Cloudy},
	{[]string{"broken clouds"}, Cloudy},
	{[]string{"scattered clouds"}, Cloudy},
	// light cloud cover still looks clear
	{[]string{"few clouds"}, Clear},
	{[]string{"clouds"}, Cloudy},
	{[]string{"clear", "sunny"}, Clear},
}

// Classify returns the weather type for a condition description. Empty or
// unrecognized descriptions are Clear.
func Classify(text string) Type {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Clear
	}
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(text, keyword) {
				return r.kind
			}
		}
	}
	return Clear
}

// Capitalize upper-cases the first letter of a condition description and keeps
// the rest as is, e.g. "light rain" becomes "Light rain".
func Capitalize(text string) string {
	if text == "" {
		return text
	}
	_, size := utf8.DecodeRuneInString(text)
	// a Caser is stateful and must not be shared between goroutines
	return cases.Upper(language.Und).String(text[:size]) + text[size:]
}

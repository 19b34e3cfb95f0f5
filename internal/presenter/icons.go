// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/display"
)

const errorIcon = "⚠️"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// typeIcons holds the light and dark period icon per weather type
var typeIcons = map[condition.Type][2]string{
	condition.Clear:  {"☀️", "🌙"},
	condition.Cloudy: {"☁️", "☁️"},
	condition.Rain:   {"🌧️", "🌧️"},
	condition.Snow:   {"🌨️", "🌨️"},
	condition.Fog:    {"🌫️", "🌫️"},
}

func conditionIcon(result display.Result) string {
	if result.Weather.IsError {
		return errorIcon
	}
	icons, ok := typeIcons[result.Type]
	if !ok {
		return ""
	}
	if result.Period.IsDark() {
		return icons[1]
	}
	return icons[0]
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package theme decides between the dark and light color scheme and selects
// the background scene for the current time period and weather.
package theme

import (
	"fmt"
	"strings"

	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/period"
	"github.com/wneessen/ambience/internal/vartype"
)

// Mode is the user's theme setting.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Scheme is the resolved color scheme.
type Scheme string

const (
	Light Scheme = "light"
	Dark  Scheme = "dark"
)

// ParseMode parses a theme mode from a settings value. An empty value means auto.
func ParseMode(val string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(val))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	}
	return "", fmt.Errorf("unknown theme mode: %q", val)
}

// Resolve returns the color scheme for mode. In auto mode evening and night
// are dark; without a known period the system preference decides.
func Resolve(mode Mode, current vartype.Variable[period.Period], systemDark bool) Scheme {
	switch mode {
	case ModeLight:
		return Light
	case ModeDark:
		return Dark
	}
	if !current.IsSet() {
		if systemDark {
			return Dark
		}
		return Light
	}
	if current.Value().IsDark() {
		return Dark
	}
	return Light
}

// Scene is a background video.
type Scene struct {
	Name  string
	Video string
}

var periodScenes = map[period.Period]Scene{
	period.Night:   {"night", "LosAngelesNight.mp4"},
	period.Morning: {"morning", "OregonSunset.mp4"},
	period.Day:     {"day", "HawaiiValley.mp4"},
	period.Evening: {"evening", "LosAngelesSunset.mp4"},
}

// precipitation and fog replace the time of day scene
var weatherScenes = map[condition.Type]Scene{
	condition.Rain: {"rain", "RainyWindow.mp4"},
	condition.Snow: {"snow", "SnowFall.mp4"},
	condition.Fog:  {"fog", "FoggyForest.mp4"},
}

// Background selects the background scene for a period and weather type.
func Background(current period.Period, kind condition.Type) Scene {
	if scene, ok := weatherScenes[kind]; ok {
		return scene
	}
	if scene, ok := periodScenes[current]; ok {
		return scene
	}
	return periodScenes[period.Night]
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package period classifies a point in time into a coarse time-of-day bucket
// based on the sunrise and sunset of the observed location.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/ambience/internal/vartype"
)

// Period is a coarse time-of-day bucket.
type Period int

const (
	Night Period = iota
	Morning
	Day
	Evening
)

const (
	minMorningLength = int64(time.Hour / time.Second)

	// sunset at or before this local hour opens the evening at sunset
	lateSunsetHour   = 20
	eveningEndHour   = 20
	eveningStartHour = 18

	// hour table used when sunrise/sunset are unusable
	morningStartHour = 5
	dayStartHour     = 11
	nightStartHour   = 21
)

var periodNames = map[Period]string{
	Night:   "night",
	Morning: "morning",
	Day:     "day",
	Evening: "evening",
}

// String returns the lower-case name of the period.
func (p Period) String() string {
	if name, ok := periodNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsDark reports whether the period should be rendered with a dark theme.
func (p Period) IsDark() bool {
	return p == Evening || p == Night
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Parse returns the Period for a name as produced by String.
func Parse(val string) (Period, error) {
	val = strings.ToLower(strings.TrimSpace(val))
	for p, name := range periodNames {
		if name == val {
			return p, nil
		}
	}
	return Night, fmt.Errorf("unknown time period: %q", val)
}

// Classify returns the time period of now. If both sunrise and sunset are set,
// positive and sunrise lies before sunset, the day is split relative to them:
// morning covers the first third of daylight (at least one hour), the evening
// runs from sunset to 8pm, or from 6pm to sunset when the sun sets after 8pm.
// Otherwise the local hour of now decides. The local zone is now.Location().
func Classify(now time.Time, sunrise, sunset vartype.VarInt64) Period {
	if !sunrise.IsSet() || !sunset.IsSet() {
		return FromHour(now.Hour())
	}
	rise, set := sunrise.Value(), sunset.Value()
	if rise <= 0 || set <= 0 || rise >= set {
		return FromHour(now.Hour())
	}

	loc := now.Location()
	var eveningStart, eveningEnd int64
	if time.Unix(set, 0).In(loc).Hour() <= lateSunsetHour {
		eveningStart = set
		eveningEnd = atLocalHour(now, eveningEndHour)
	} else {
		eveningStart = atLocalHour(now, eveningStartHour)
		eveningEnd = set
	}
	morningEnd := float64(rise) + max(float64(set-rise)/3, float64(minMorningLength))

	ts := now.Unix()
	switch {
	case ts < rise:
		return Night
	case float64(ts) < morningEnd:
		return Morning
	case ts < eveningStart:
		return Day
	case ts < eveningEnd:
		return Evening
	default:
		return Night
	}
}

// FromHour maps a 24h clock hour onto the fixed hour table.
func FromHour(hour int) Period {
	switch {
	case hour >= nightStartHour || hour < morningStartHour:
		return Night
	case hour < dayStartHour:
		return Morning
	case hour < eveningStartHour:
		return Day
	default:
		return Evening
	}
}

func atLocalHour(now time.Time, hour int) int64 {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).Unix()
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package units

import (
	"math"
	"strconv"
	"time"

	"github.com/wneessen/ambience/internal/vartype"
)

const (
	mphToMS = 0.44704
	kmhToMS = 0.277778
	msToMPH = 2.23694
	msToKMH = 3.6

	clockLayout12h = "3:04pm"
	clockLayout24h = "15:04"
)

// FahrenheitToCelsius converts and rounds half away from zero.
func FahrenheitToCelsius(fahrenheit float64) int {
	return int(math.Round((fahrenheit - 32) * 5 / 9))
}

// CelsiusToFahrenheit converts and rounds half away from zero.
func CelsiusToFahrenheit(celsius float64) int {
	return int(math.Round(celsius*9/5 + 32))
}

// FormatTemperature converts value from source to target and returns the rounded
// integer as string. NaN and infinities are treated as 0.
func FormatTemperature(value float64, source, target Temperature) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	switch {
	case source == Fahrenheit && target == Celsius:
		return strconv.Itoa(FahrenheitToCelsius(value))
	case source == Celsius && target == Fahrenheit:
		return strconv.Itoa(CelsiusToFahrenheit(value))
	default:
		return strconv.Itoa(int(math.Round(value)))
	}
}

// ConvertSpeed converts a wind speed between units by way of m/s and rounds the result.
func ConvertSpeed(value float64, source, target Speed) int {
	if source == target {
		return int(math.Round(value))
	}

	ms := value
	switch source {
	case MPH:
		ms = value * mphToMS
	case KMH:
		ms = value * kmhToMS
	}

	switch target {
	case MPH:
		return int(math.Round(ms * msToMPH))
	case KMH:
		return int(math.Round(ms * msToKMH))
	default:
		return int(math.Round(ms))
	}
}

// FormatClock renders a unix epoch as wall clock time in loc. The 12h format
// yields e.g. "6:30pm", the 24h format "18:30". A zero epoch yields the "--"
// placeholder. A nil loc means time.Local.
func FormatClock(epoch int64, format TimeFormat, loc *time.Location) string {
	if epoch == 0 {
		return vartype.Placeholder
	}
	if loc == nil {
		loc = time.Local
	}

	clock := time.Unix(epoch, 0).In(loc)
	if format == Clock24h {
		return clock.Format(clockLayout24h)
	}
	return clock.Format(clockLayout12h)
}

// FormatOptionalClock is FormatClock for epochs that may be absent.
func FormatOptionalClock(epoch vartype.VarInt64, format TimeFormat, loc *time.Location) string {
	if !epoch.IsSet() {
		return vartype.Placeholder
	}
	return FormatClock(epoch.Value(), format, loc)
}

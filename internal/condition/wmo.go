// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package condition

// WMO describes a WMO weather interpretation code in the vocabulary the
// OpenWeather API uses, so that readings from either provider can be
// classified and rendered alike.
type WMO struct {
	Main        string
	Description string
	Icon        string
}

// wmoCodes maps WMO weather codes to OpenWeather style groups, descriptions
// and icon prefixes. The icon suffix ("d" or "n") is added by WMOCode.
var wmoCodes = map[int]WMO{
	0:  {"Clear", "clear sky", "01"},
	1:  {"Clouds", "few clouds", "02"},
	2:  {"Clouds", "scattered clouds", "03"},
	3:  {"Clouds", "overcast clouds", "04"},
	45: {"Fog", "fog", "50"},
	48: {"Fog", "depositing rime fog", "50"},
	51: {"Drizzle", "light intensity drizzle", "09"},
	53: {"Drizzle", "drizzle", "09"},
	55: {"Drizzle", "heavy intensity drizzle", "09"},
	56: {"Drizzle", "light freezing drizzle", "09"},
	57: {"Drizzle", "dense freezing drizzle", "09"},
	61: {"Rain", "light rain", "10"},
	63: {"Rain", "moderate rain", "10"},
	65: {"Rain", "heavy intensity rain", "10"},
	66: {"Rain", "light freezing rain", "13"},
	67: {"Rain", "freezing rain", "13"},
	71: {"Snow", "light snow", "13"},
	73: {"Snow", "snow", "13"},
	75: {"Snow", "heavy snow", "13"},
	77: {"Snow", "granular snow", "13"},
	80: {"Rain", "light intensity shower rain", "09"},
	81: {"Rain", "shower rain", "09"},
	82: {"Rain", "heavy intensity shower rain", "09"},
	85: {"Snow", "light shower snow", "13"},
	86: {"Snow", "heavy shower snow", "13"},
	95: {"Thunderstorm", "thunderstorm", "11"},
	96: {"Thunderstorm", "thunderstorm with light hail", "11"},
	99: {"Thunderstorm", "thunderstorm with heavy hail", "11"},
}

// WMOCode returns the description of a WMO weather code. The boolean is false
// for codes outside the WMO table.
func WMOCode(code int, isDay bool) (WMO, bool) {
	wmo, ok := wmoCodes[code]
	if !ok {
		return WMO{}, false
	}
	if isDay {
		wmo.Icon += "d"
	} else {
		wmo.Icon += "n"
	}
	return wmo, true
}

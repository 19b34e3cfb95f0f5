// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package units

import "strings"

// imperialCountries lists ISO 3166-1 alpha-2 codes of countries that primarily use Fahrenheit and mph.
var imperialCountries = map[string]struct{}{
	"US": {}, // United States
	"BS": {}, // Bahamas
	"BZ": {}, // Belize
	"KY": {}, // Cayman Islands
	"LR": {}, // Liberia
	"PW": {}, // Palau
	"FM": {}, // Federated States of Micronesia
	"MH": {}, // Marshall Islands
}

// IsImperialCountry reports whether the country primarily uses imperial units.
func IsImperialCountry(countryCode string) bool {
	_, ok := imperialCountries[strings.ToUpper(strings.TrimSpace(countryCode))]
	return ok
}

// DefaultsForCountry returns the unit preferences a user in the given country most
// likely expects. An empty or unknown code yields metric defaults.
func DefaultsForCountry(countryCode string) Preferences {
	if IsImperialCountry(countryCode) {
		return Preferences{Temperature: Fahrenheit, Speed: MPH, TimeFormat: Clock12h}
	}
	return DefaultPreferences()
}

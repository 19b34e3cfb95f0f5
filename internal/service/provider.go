// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/ambience/internal/config"
	"github.com/wneessen/ambience/internal/geocode"
	nominatim "github.com/wneessen/ambience/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/ambience/internal/http"
	"github.com/wneessen/ambience/internal/i18n"
	"github.com/wneessen/ambience/internal/weather"
	openmeteo "github.com/wneessen/ambience/internal/weather/provider/open-meteo"
	"github.com/wneessen/ambience/internal/weather/provider/openweather"
)

const (
	geocoderHitTTL  = time.Hour * 24
	geocoderMissTTL = time.Hour
)

func (s *Service) selectWeatherProvider() (weather.Provider, error) {
	switch strings.ToLower(s.config.Weather.Provider) {
	case config.ProviderOpenWeather:
		client := http.New(s.logger, http.WithCircuitBreaker(config.ProviderOpenWeather))
		return openweather.New(client, s.logger, s.config.Weather.APIKey)
	case config.ProviderOpenMeteo:
		return openmeteo.New(http.New(s.logger), s.logger)
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", s.config.Weather.Provider)
	}
}

// selectGeocoder returns the geocoder used to name the configured place, or nil
// when a name is configured or the lookup is disabled.
func (s *Service) selectGeocoder() geocode.Geocoder {
	if s.config.Location.Name != "" || s.config.Location.DisableGeocoder {
		return nil
	}
	client := http.New(s.logger, http.WithCircuitBreaker("nominatim"))
	coder := nominatim.New(client, i18n.Tag(s.config.Locale))
	return geocode.NewCachedGeocoder(coder, geocoderHitTTL, geocoderMissTTL)
}

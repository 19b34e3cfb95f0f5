// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/hectormalot/omgo"
	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/http"
	"github.com/wneessen/ambience/internal/logger"
	"github.com/wneessen/ambience/internal/vartype"
	"github.com/wneessen/ambience/internal/weather"
)

const (
	name       = "open-meteo"
	apiTimeout = time.Second * 10

	// forecastStep matches the 3-hour spacing of the OpenWeather forecast feed
	forecastStep = 3
)

type OpenMeteo struct {
	log    *logger.Logger
	client omgo.Client
	now    func() time.Time
}

// New returns an Open-Meteo provider that performs its requests through the
// given HTTP client.
func New(client *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	omclient, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	omclient.Client = client.Client
	omclient.UserAgent = http.UserAgent

	return &OpenMeteo{log: log, client: omclient, now: time.Now}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) GetWeather(ctx context.Context, coords weather.Coordinate) (*weather.Reading, error) {
	forecast, err := o.forecast(ctx, coords, "relative_humidity_2m", "pressure_msl")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve current weather from Open-Meteo API: %w", err)
	}

	now := o.now()
	current := forecast.CurrentWeather
	observed := current.Time.Time
	if observed.IsZero() {
		observed = now
	}

	reading := &weather.Reading{
		TemperatureF: current.Temperature,
		WindSpeedMPH: current.WindSpeed,
		ObservedAt:   observed,
	}
	// sun times are computed for the local calendar date the display is classified in
	rise, set := sunrise.SunriseSunset(coords.Lat, coords.Lon, now.Year(), now.Month(), now.Day())
	if !rise.IsZero() && !set.IsZero() {
		reading.Sunrise = vartype.NewVariable(rise.Unix())
		reading.Sunset = vartype.NewVariable(set.Unix())
	}
	isDay := observed.After(rise) && observed.Before(set)

	code := int(current.WeatherCode)
	if wmo, ok := condition.WMOCode(code, isDay); ok {
		reading.HasCondition = true
		reading.ConditionMain = wmo.Main
		reading.ConditionDescription = wmo.Description
		reading.ConditionID = code
	} else {
		o.log.Warn("unknown WMO weather code", "provider", name, "code", code)
	}

	if idx := hourIndex(forecast.HourlyTimes, observed); idx >= 0 {
		reading.Humidity = metricAt(forecast.HourlyMetrics, "relative_humidity_2m", idx)
		reading.Pressure = metricAt(forecast.HourlyMetrics, "pressure_msl", idx)
	}
	o.log.Debug("received current weather", "provider", name, "temperature", reading.TemperatureF,
		"code", code)

	return reading, nil
}

func (o *OpenMeteo) GetForecast(ctx context.Context, coords weather.Coordinate) ([]weather.ForecastSample, error) {
	forecast, err := o.forecast(ctx, coords, "temperature_2m", "weather_code", "is_day")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast from Open-Meteo API: %w", err)
	}

	now := o.now().UTC().Truncate(time.Hour)
	samples := make([]weather.ForecastSample, 0, len(forecast.HourlyTimes)/forecastStep)
	for idx, stamp := range forecast.HourlyTimes {
		if stamp.Before(now) || stamp.Hour()%forecastStep != 0 {
			continue
		}
		sample := weather.ForecastSample{
			Timestamp:    stamp.Unix(),
			TemperatureF: metricAt(forecast.HourlyMetrics, "temperature_2m", idx),
		}
		code := int(metricAt(forecast.HourlyMetrics, "weather_code", idx))
		isDay := metricAt(forecast.HourlyMetrics, "is_day", idx) > 0
		if wmo, ok := condition.WMOCode(code, isDay); ok {
			sample.ConditionMain = wmo.Main
			sample.ConditionDescription = wmo.Description
			sample.ConditionIcon = wmo.Icon
		}
		samples = append(samples, sample)
	}
	o.log.Debug("received forecast", "provider", name, "samples", len(samples))

	return samples, nil
}

// forecast queries the API in imperial units. Timestamps are requested in GMT
// so that they can be taken as UTC.
func (o *OpenMeteo) forecast(ctx context.Context, coords weather.Coordinate, metrics ...string) (*omgo.Forecast, error) {
	if !coords.Valid() {
		return nil, fmt.Errorf("invalid coordinates: %s", coords)
	}
	location, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinates %s: %w", coords, err)
	}
	opts := &omgo.Options{
		Timezone:          "GMT",
		TemperatureUnit:   "fahrenheit",
		WindspeedUnit:     "mph",
		PrecipitationUnit: "inch",
		HourlyMetrics:     metrics,
	}

	ctxFetch, cancelFetch := context.WithTimeout(ctx, apiTimeout)
	defer cancelFetch()
	return o.client.Forecast(ctxFetch, location, opts)
}

// hourIndex returns the index of the hourly slot containing t, or -1.
func hourIndex(times []time.Time, t time.Time) int {
	slot := t.UTC().Truncate(time.Hour)
	for i, stamp := range times {
		if stamp.Equal(slot) {
			return i
		}
	}
	return -1
}

func metricAt(metrics map[string][]float64, key string, idx int) float64 {
	values, ok := metrics[key]
	if !ok || idx < 0 || idx >= len(values) {
		return 0
	}
	return values[idx]
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/ambience/internal/http"
	"github.com/wneessen/ambience/internal/logger"
	"github.com/wneessen/ambience/internal/vartype"
	"github.com/wneessen/ambience/internal/weather"
)

const (
	name             = "openweather"
	weatherEndpoint  = "https://api.openweathermap.org/data/2.5/weather"
	forecastEndpoint = "https://api.openweathermap.org/data/2.5/forecast"
	apiTimeout       = time.Second * 10
)

var ErrMissingAPIKey = errors.New("OpenWeather API key is required")

type OpenWeather struct {
	apiKey string
	log    *logger.Logger
	http   *http.Client
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainBlock struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

// apiError holds the message of an error response. Successful forecast
// responses send a numeric message, which is not an error text.
type apiError struct {
	Message any `json:"message"`
}

func (e apiError) text() string {
	msg, ok := e.Message.(string)
	if !ok {
		return ""
	}
	return msg
}

type currentResponse struct {
	apiError
	Name    string      `json:"name"`
	Dt      int64       `json:"dt"`
	Main    mainBlock   `json:"main"`
	Weather []condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type forecastResponse struct {
	apiError
	List []struct {
		Dt      int64       `json:"dt"`
		Main    mainBlock   `json:"main"`
		Weather []condition `json:"weather"`
		DtTxt   string      `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"city"`
}

func New(http *http.Client, log *logger.Logger, apiKey string) (*OpenWeather, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &OpenWeather{apiKey: apiKey, http: http, log: log}, nil
}

func (o *OpenWeather) Name() string {
	return name
}

func (o *OpenWeather) GetWeather(ctx context.Context, coords weather.Coordinate) (*weather.Reading, error) {
	res := new(currentResponse)
	if err := o.get(ctx, weatherEndpoint, coords, res, &res.apiError); err != nil {
		return nil, fmt.Errorf("failed to retrieve current weather from OpenWeather API: %w", err)
	}

	reading := &weather.Reading{
		Location:     res.Name,
		Country:      res.Sys.Country,
		TemperatureF: res.Main.Temp,
		Humidity:     res.Main.Humidity,
		Pressure:     res.Main.Pressure,
		WindSpeedMPH: res.Wind.Speed,
		Sunrise:      vartype.NonZero(res.Sys.Sunrise),
		Sunset:       vartype.NonZero(res.Sys.Sunset),
		ObservedAt:   time.Now(),
	}
	if res.Dt > 0 {
		reading.ObservedAt = time.Unix(res.Dt, 0)
	}
	if len(res.Weather) > 0 {
		reading.HasCondition = true
		reading.ConditionMain = res.Weather[0].Main
		reading.ConditionDescription = res.Weather[0].Description
		reading.ConditionID = res.Weather[0].ID
	}
	o.log.Debug("received current weather", "provider", name, "location", reading.Location,
		"temperature", reading.TemperatureF)

	return reading, nil
}

func (o *OpenWeather) GetForecast(ctx context.Context, coords weather.Coordinate) ([]weather.ForecastSample, error) {
	res := new(forecastResponse)
	if err := o.get(ctx, forecastEndpoint, coords, res, &res.apiError); err != nil {
		return nil, fmt.Errorf("failed to retrieve forecast from OpenWeather API: %w", err)
	}

	samples := make([]weather.ForecastSample, 0, len(res.List))
	for _, entry := range res.List {
		sample := weather.ForecastSample{
			Timestamp:    entry.Dt,
			TemperatureF: entry.Main.Temp,
		}
		if len(entry.Weather) > 0 {
			sample.ConditionMain = entry.Weather[0].Main
			sample.ConditionDescription = entry.Weather[0].Description
			sample.ConditionIcon = entry.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	o.log.Debug("received forecast", "provider", name, "samples", len(samples))

	return samples, nil
}

// get queries endpoint for coords in imperial units. A non-200 status is
// reported with the API's error message if one was sent.
func (o *OpenWeather) get(ctx context.Context, endpoint string, coords weather.Coordinate, target any, apiErr *apiError) error {
	if !coords.Valid() {
		return fmt.Errorf("invalid coordinates: %s", coords)
	}
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("units", "imperial")
	query.Set("appid", o.apiKey)

	code, err := o.http.GetWithTimeout(ctx, endpoint, target, query, nil, apiTimeout)
	if err != nil {
		return err
	}
	if code != 200 {
		if msg := apiErr.text(); msg != "" {
			return fmt.Errorf("OpenWeather API returned non-positive response code: %d: %s", code, msg)
		}
		return fmt.Errorf("OpenWeather API returned non-positive response code: %d", code)
	}
	return nil
}

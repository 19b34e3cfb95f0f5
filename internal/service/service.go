// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/ambience/internal/config"
	"github.com/wneessen/ambience/internal/geocode"
	"github.com/wneessen/ambience/internal/logger"
	"github.com/wneessen/ambience/internal/presenter"
	"github.com/wneessen/ambience/internal/weather"
)

const FetchTimeout = time.Second * 15

var ErrWeatherNotSet = errors.New("no weather data fetched yet")

type Service struct {
	config      *config.Config
	logger      *logger.Logger
	t           *spreak.Localizer
	presenter   *presenter.Presenter
	scheduler   gocron.Scheduler
	weatherProv weather.Provider
	geocoder    geocode.Geocoder
	coords      weather.Coordinate
	now         func() time.Time
	watchSleep  bool
	SignalSrc   signalSource

	outputLock sync.Mutex
	output     io.Writer

	weatherLock  sync.RWMutex
	weatherIsSet bool
	reading      *weather.Reading
	forecast     []weather.ForecastSample
	fetchErr     error
}

func New(conf *config.Config, log *logger.Logger, lang *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, errors.New("logger is required")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	pres, err := presenter.New(conf, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	service := &Service{
		config:     conf,
		logger:     log,
		t:          lang,
		presenter:  pres,
		scheduler:  scheduler,
		coords:     weather.Coordinate{Lat: conf.Location.Latitude, Lon: conf.Location.Longitude},
		now:        time.Now,
		watchSleep: true,
		SignalSrc:  stdLibSignalSource{},
		output:     os.Stdout,
	}

	prov, err := service.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	service.weatherProv = prov
	service.geocoder = service.selectGeocoder()

	return service, nil
}

func (s *Service) Run(ctx context.Context) error {
	// Start scheduled jobs
	if err := s.createScheduledJob(ctx, s.config.Intervals.Output, s.printWeather,
		"weatherdata_output_job"); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.fetchWeather,
		"weather_update_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	// Initial weather fetch, so we don't wait for the first interval
	s.refresh(ctx)

	if s.watchSleep {
		go s.monitorSleepResume(ctx)
	}

	// Wait for the context to cancel
	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// refresh fetches the latest weather data and prints it right away
func (s *Service) refresh(ctx context.Context) {
	s.fetchWeather(ctx)
	s.printWeather(ctx)
}

// fetchWeather retrieves the current weather and the forecast from the weather provider. A failed
// current weather fetch is kept as error state, a failed forecast only empties the forecast.
func (s *Service) fetchWeather(ctx context.Context) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	reading, err := s.weatherProv.GetWeather(ctxFetch, s.coords)
	if err != nil {
		s.logger.Error("failed to fetch weather data", logger.Err(err),
			slog.String("source", s.weatherProv.Name()))
		reading = nil
	}

	var samples []weather.ForecastSample
	if err == nil {
		s.resolvePlace(ctxFetch, reading)
		var ferr error
		samples, ferr = s.weatherProv.GetForecast(ctxFetch, s.coords)
		if ferr != nil {
			s.logger.Error("failed to fetch forecast data", logger.Err(ferr),
				slog.String("source", s.weatherProv.Name()))
			samples = nil
		}
	}

	s.weatherLock.Lock()
	defer s.weatherLock.Unlock()
	s.reading = reading
	s.forecast = samples
	s.fetchErr = err
	s.weatherIsSet = true
}

// resolvePlace fills in the place name of a reading that comes without one
func (s *Service) resolvePlace(ctx context.Context, reading *weather.Reading) {
	if s.geocoder == nil || reading.Location != "" {
		return
	}
	place, err := s.geocoder.Reverse(ctx, s.coords)
	if err != nil {
		s.logger.Warn("failed to resolve place name", logger.Err(err),
			slog.String("source", s.geocoder.Name()))
		return
	}
	if !place.Found {
		s.logger.Debug("no place found for coordinates", slog.String("coordinates", s.coords.String()))
		return
	}
	reading.Location = place.Name()
	if reading.Country == "" {
		reading.Country = place.CountryCode
	}
}

// printWeather renders the latest weather data and writes it as JSON line to the output.
func (s *Service) printWeather(context.Context) {
	s.weatherLock.RLock()
	if !s.weatherIsSet {
		s.weatherLock.RUnlock()
		return
	}
	tplCtx := s.presenter.BuildContext(s.reading, s.fetchErr, s.forecast, s.now())
	s.weatherLock.RUnlock()

	output, err := s.presenter.Render(tplCtx)
	if err != nil {
		s.logger.Error("failed to render weather data", logger.Err(err))
		return
	}

	s.outputLock.Lock()
	defer s.outputLock.Unlock()
	if err = json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode weather data", logger.Err(err))
	}
}

// logState writes the currently held weather data to the log
func (s *Service) logState() {
	s.weatherLock.RLock()
	defer s.weatherLock.RUnlock()

	if !s.weatherIsSet {
		s.logger.Info("current weather state", slog.String("provider", s.weatherProv.Name()),
			logger.Err(ErrWeatherNotSet))
		return
	}
	attrs := []any{
		slog.String("provider", s.weatherProv.Name()),
		slog.String("coordinates", s.coords.String()),
		slog.Int("forecast_samples", len(s.forecast)),
	}
	if s.fetchErr != nil {
		attrs = append(attrs, logger.Err(s.fetchErr))
	}
	if s.reading != nil {
		attrs = append(attrs, slog.String("location", s.reading.Location),
			slog.Float64("temperature_f", s.reading.TemperatureF),
			slog.String("condition", s.reading.ConditionDescription))
	}
	s.logger.Info("current weather state", attrs...)
}

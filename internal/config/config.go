// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"

	"github.com/wneessen/ambience/internal/theme"
	"github.com/wneessen/ambience/internal/units"
)

const (
	configEnv = "AMBIENCE"

	// APIKeyEnv is read when no API key is configured. It is typically set via a .env file.
	APIKeyEnv = "OPENWEATHER_API_KEY"

	ProviderOpenWeather = "openweather"
	ProviderOpenMeteo   = "open-meteo"

	DefaultTextTpl    = "{{.Icon}} {{.Weather.Temperature}}{{.Weather.Unit}}"
	DefaultTooltipTpl = "{{.Weather.Location}}: {{.Weather.Condition}}\n" +
		"{{loc \"Sunrise\"}}: {{.Weather.Sunrise}}  {{loc \"Sunset\"}}: {{.Weather.Sunset}}\n" +
		"{{loc \"Wind\"}}: {{.WindSpeed}}  {{loc \"Humidity\"}}: {{.Humidity}}\n" +
		"{{loc \"Moon\"}}: {{.MoonIcon}} {{loc .Moonphase}}\n\n" +
		"{{forecastTable .Forecast}}\n" +
		"{{loc \"Updated\"}} {{.UpdatedAgo}}"
)

var (
	ErrMissingLocation = errors.New("location latitude and longitude must be configured")

	validate = validator.New()
)

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Locale   string     `fig:"locale"`
	// ISO 3166-1 alpha-2 code, used for unit defaults. Derived from the locale if empty.
	Country string `fig:"country" validate:"omitempty,iso3166_1_alpha2"`

	// Empty unit values are filled with the country defaults
	Units struct {
		Temperature string `fig:"temperature"`
		Speed       string `fig:"speed"`
		TimeFormat  string `fig:"time_format"`
	} `fig:"units"`

	Theme struct {
		// Allowed values: auto, light, dark
		Mode       string `fig:"mode" default:"auto" validate:"oneof=auto light dark"`
		SystemDark bool   `fig:"system_dark"`
	} `fig:"theme"`

	Weather struct {
		// Allowed values: openweather, open-meteo
		Provider string `fig:"provider" default:"open-meteo" validate:"oneof=openweather open-meteo"`
		APIKey   string `fig:"api_key"`
	} `fig:"weather"`

	Location struct {
		// Without a name, the place is looked up via OpenStreetMap Nominatim unless disabled
		Name            string  `fig:"name"`
		Latitude        float64 `fig:"latitude" validate:"latitude"`
		Longitude       float64 `fig:"longitude" validate:"longitude"`
		DisableGeocoder bool    `fig:"disable_geocoder"`
	} `fig:"location"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m" validate:"min=1m"`
		Output        time.Duration `fig:"output" default:"30s" validate:"min=1s"`
	} `fig:"intervals"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the configuration and fills in all derived defaults. Unit
// values are normalized to their canonical form.
func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Country = strings.ToUpper(strings.TrimSpace(c.Country))
	if c.Country == "" {
		c.Country = countryFromLocale(c.Locale)
	}
	c.Theme.Mode = strings.ToLower(strings.TrimSpace(c.Theme.Mode))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Location.Latitude == 0 && c.Location.Longitude == 0 {
		return ErrMissingLocation
	}

	if err := c.normalizeUnits(); err != nil {
		return err
	}
	if c.Weather.APIKey == "" {
		c.Weather.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}

	return nil
}

// Preferences returns the unit preferences. Validate must have succeeded before.
func (c *Config) Preferences() units.Preferences {
	return units.Preferences{
		Temperature: units.Temperature(c.Units.Temperature),
		Speed:       units.Speed(c.Units.Speed),
		TimeFormat:  units.TimeFormat(c.Units.TimeFormat),
	}
}

// ThemeMode returns the configured theme mode. Validate must have succeeded before.
func (c *Config) ThemeMode() theme.Mode {
	mode, _ := theme.ParseMode(c.Theme.Mode)
	return mode
}

func (c *Config) normalizeUnits() error {
	defaults := units.DefaultsForCountry(c.Country)

	temperature := defaults.Temperature
	if c.Units.Temperature != "" {
		val, err := units.ParseTemperature(c.Units.Temperature)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		temperature = val
	}
	speed := defaults.Speed
	if c.Units.Speed != "" {
		val, err := units.ParseSpeed(c.Units.Speed)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		speed = val
	}
	timeFormat := defaults.TimeFormat
	if c.Units.TimeFormat != "" {
		val, err := units.ParseTimeFormat(c.Units.TimeFormat)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		timeFormat = val
	}

	c.Units.Temperature = string(temperature)
	c.Units.Speed = string(speed)
	c.Units.TimeFormat = string(timeFormat)
	return c.Preferences().Validate()
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}

// countryFromLocale returns the region of a locale like "en-US", if it names one explicitly.
func countryFromLocale(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	region, confidence := tag.Region()
	if confidence != language.Exact {
		return ""
	}
	return region.String()
}

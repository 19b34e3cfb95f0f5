// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/config"
	"github.com/wneessen/ambience/internal/display"
	"github.com/wneessen/ambience/internal/forecast"
	"github.com/wneessen/ambience/internal/i18n"
	"github.com/wneessen/ambience/internal/period"
	"github.com/wneessen/ambience/internal/template"
	"github.com/wneessen/ambience/internal/theme"
	"github.com/wneessen/ambience/internal/units"
	"github.com/wneessen/ambience/internal/vartype"
	"github.com/wneessen/ambience/internal/weather"
)

const (
	OutputClass = "ambience"
	ErrorClass  = "error"
)

// TemplateContext is the data the text and tooltip templates are rendered with.
type TemplateContext struct {
	Weather display.Weather
	Period  period.Period
	Type    condition.Type
	Icon    string

	Scheme theme.Scheme
	Scene  theme.Scene

	WindSpeed string
	Humidity  string
	Pressure  string

	Forecast []forecast.DailySummary

	Moonphase string
	MoonIcon  string

	UpdateTime time.Time
	UpdatedAgo string
}

// Output is a single status line as consumed by waybar.
type Output struct {
	Text    string   `json:"text"`
	Tooltip string   `json:"tooltip"`
	Class   []string `json:"class"`
	Alt     string   `json:"alt"`
}

type Presenter struct {
	templates  *template.Templates
	humanizer  *humanize.Humanizer
	prefs      units.Preferences
	mode       theme.Mode
	systemDark bool
	location   string
}

// New parses the configured templates and renders them once against a
// placeholder context, so that broken templates are reported at startup.
func New(conf *config.Config, lang *spreak.Localizer) (*Presenter, error) {
	tpls, err := template.New(conf, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}

	pres := &Presenter{
		templates:  tpls,
		humanizer:  collection.CreateHumanizer(i18n.Tag(conf.Locale)),
		prefs:      conf.Preferences(),
		mode:       conf.ThemeMode(),
		systemDark: conf.Theme.SystemDark,
		location:   conf.Location.Name,
	}

	if _, err = pres.Render(pres.BuildContext(nil, nil, nil, time.Now())); err != nil {
		return nil, fmt.Errorf("failed to render templates: %w", err)
	}
	return pres, nil
}

// BuildContext derives everything the templates need from the latest reading
// and forecast. A nil reading or a non-nil fetchErr yields the error state.
func (p *Presenter) BuildContext(reading *weather.Reading, fetchErr error, samples []weather.ForecastSample,
	now time.Time,
) TemplateContext {
	if reading != nil && reading.Location == "" && p.location != "" {
		named := *reading
		named.Location = p.location
		reading = &named
	}
	result := display.Build(reading, fetchErr, p.prefs, now)

	// without a reading the period is a guess, so the system preference decides
	current := vartype.NewVariable(result.Period)
	if reading == nil || fetchErr != nil {
		current.Reset()
	}

	moon := moonphase.New(now)
	ctx := TemplateContext{
		Weather:   result.Weather,
		Period:    result.Period,
		Type:      result.Type,
		Icon:      conditionIcon(result),
		Scheme:    theme.Resolve(p.mode, current, p.systemDark),
		Scene:     theme.Background(result.Period, result.Type),
		WindSpeed: vartype.Placeholder,
		Humidity:  vartype.Placeholder,
		Pressure:  vartype.Placeholder,
		Forecast:  forecast.AggregateIn(samples, p.prefs.Temperature, now.Location()),
		Moonphase: moon.PhaseName(),
		MoonIcon:  MoonPhaseIcon[moon.PhaseName()],
	}
	ctx.UpdatedAgo = vartype.Placeholder
	if result.Weather.IsError {
		return ctx
	}

	speed := units.ConvertSpeed(reading.WindSpeedMPH, units.MPH, p.prefs.Speed)
	ctx.WindSpeed = fmt.Sprintf("%d %s", speed, p.prefs.Speed.Label())
	if reading.Humidity > 0 {
		ctx.Humidity = fmt.Sprintf("%d%%", int(math.Round(reading.Humidity)))
	}
	if reading.Pressure > 0 {
		ctx.Pressure = fmt.Sprintf("%d hPa", int(math.Round(reading.Pressure)))
	}
	if !reading.ObservedAt.IsZero() {
		ctx.UpdateTime = reading.ObservedAt
		ctx.UpdatedAgo = p.humanizer.NaturalTime(reading.ObservedAt)
	}
	return ctx
}

// Render executes the templates and assembles the status line.
func (p *Presenter) Render(ctx TemplateContext) (Output, error) {
	text := bytes.NewBuffer(nil)
	if err := p.templates.Text.Execute(text, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render text template: %w", err)
	}
	tooltip := bytes.NewBuffer(nil)
	if err := p.templates.Tooltip.Execute(tooltip, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render tooltip template: %w", err)
	}

	class := []string{OutputClass, ctx.Period.String(), ctx.Type.String(), string(ctx.Scheme)}
	if ctx.Weather.IsError {
		class = append(class, ErrorClass)
	}
	return Output{
		Text:    text.String(),
		Tooltip: tooltip.String(),
		Class:   class,
		Alt:     ctx.Scene.Name,
	}, nil
}

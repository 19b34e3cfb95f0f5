// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/ambience/internal/config"
	"github.com/wneessen/ambience/internal/forecast"
)

const tableSeparator = "  "

type Templates struct {
	Text      *template.Template
	Tooltip   *template.Template
	localizer *spreak.Localizer
}

var i18nVars = map[string]localize.MsgID{
	"Sunrise":         "Sunrise",
	"Sunset":          "Sunset",
	"Wind":            "Wind",
	"Humidity":        "Humidity",
	"Pressure":        "Pressure",
	"Moon":            "Moon",
	"Updated":         "Updated",
	"Forecast":        "Forecast",
	"New Moon":        "New moon",
	"Waxing Crescent": "Waxing crescent",
	"First Quarter":   "First quarter",
	"Waxing Gibbous":  "Waxing gibbous",
	"Full Moon":       "Full moon",
	"Waning Gibbous":  "Waning gibbous",
	"Third Quarter":   "Third quarter",
	"Waning Crescent": "Waning crescent",
	"Monday":          "Monday",
	"Tuesday":         "Tuesday",
	"Wednesday":       "Wednesday",
	"Thursday":        "Thursday",
	"Friday":          "Friday",
	"Saturday":        "Saturday",
	"Sunday":          "Sunday",
}

// iconEmoji maps the OpenWeather icon prefix to an emoji for day and night
var iconEmoji = map[string][2]string{
	"01": {"☀️", "🌙"},
	"02": {"🌤️", "🌙"},
	"03": {"⛅", "☁️"},
	"04": {"☁️", "☁️"},
	"09": {"🌧️", "🌧️"},
	"10": {"🌦️", "🌧️"},
	"11": {"⛈️", "⛈️"},
	"13": {"🌨️", "🌨️"},
	"50": {"🌫️", "🌫️"},
}

func New(conf *config.Config, loc *spreak.Localizer) (*Templates, error) {
	tpls := new(Templates)
	tpls.localizer = loc

	tpl, err := template.New("text").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse text template: %w", err)
	}
	tpls.Text = tpl

	tpl, err = template.New("tooltip").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse tooltip template: %w", err)
	}
	tpls.Tooltip = tpl

	return tpls, nil
}

func (t *Templates) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    timeFormat,
		"floatFormat":   floatFormat,
		"icon":          IconEmoji,
		"loc":           t.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
		"forecastTable": t.forecastTable,
	}
}

func (t *Templates) loc(val string) string {
	if raw, ok := i18nVars[val]; ok && t.localizer != nil {
		return t.localizer.Get(raw)
	}
	return val
}

// forecastTable renders one line per day with aligned columns
func (t *Templates) forecastTable(days []forecast.DailySummary) string {
	if len(days) == 0 {
		return ""
	}

	rows := make([][]string, len(days))
	widths := make([]int, 4)
	for i, day := range days {
		rows[i] = []string{
			EmojiWithSpace(IconEmoji(day.IconCode)),
			t.loc(day.DayName),
			day.DateLabel,
			day.TempHigh + "°/" + day.TempLow + "°",
		}
		for col := range widths {
			widths[col] = max(widths[col], runewidth.StringWidth(rows[i][col]))
		}
	}

	lines := make([]string, len(days))
	for i, row := range rows {
		var sb strings.Builder
		sb.WriteString(row[0])
		for col := 1; col < len(row); col++ {
			sb.WriteString(runewidth.FillRight(row[col], widths[col]))
			sb.WriteString(tableSeparator)
		}
		sb.WriteString(days[i].ConditionLabel)
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}

// IconEmoji returns the emoji for an OpenWeather style icon code like "10d".
// Unknown codes yield an empty string.
func IconEmoji(code string) string {
	if len(code) < 2 {
		return ""
	}
	icons, ok := iconEmoji[code[:2]]
	if !ok {
		return ""
	}
	if strings.HasSuffix(code, "n") {
		return icons[1]
	}
	return icons[0]
}

// EmojiWithSpace pads an emoji to a fixed cell width of three.
func EmojiWithSpace(emoji string) string {
	width := runewidth.StringWidth(emoji)
	if width >= 3 {
		return emoji
	}
	return emoji + strings.Repeat(" ", 3-width)
}

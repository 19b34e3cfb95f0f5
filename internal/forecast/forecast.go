// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package forecast collapses a multi-entry forecast feed into one summary row per day.
package forecast

import (
	"math"
	"time"

	"github.com/wneessen/ambience/internal/condition"
	"github.com/wneessen/ambience/internal/units"
	"github.com/wneessen/ambience/internal/weather"
)

// MaxDays is the maximum number of daily summaries Aggregate returns.
const MaxDays = 5

const (
	dateKeyLayout   = "2006-01-02"
	dateLabelLayout = "Jan 2"
	dayNameLayout   = "Monday"
)

// DailySummary is one row of a multi-day forecast.
type DailySummary struct {
	DateLabel      string
	DayName        string
	ConditionLabel string
	TempHigh       string
	TempLow        string
	IconCode       string
}

// bucket collects the samples of one calendar day. The first sample of the
// day provides the date, condition and icon.
type bucket struct {
	first weather.ForecastSample
	date  time.Time
	high  float64
	low   float64
}

func (b *bucket) add(sample weather.ForecastSample) {
	b.high = math.Max(b.high, sample.TemperatureF)
	b.low = math.Min(b.low, sample.TemperatureF)
}

func (b *bucket) summary(unit units.Temperature) DailySummary {
	return DailySummary{
		DateLabel:      b.date.Format(dateLabelLayout),
		DayName:        b.date.Format(dayNameLayout),
		ConditionLabel: condition.Capitalize(b.first.ConditionDescription),
		TempHigh:       units.FormatTemperature(b.high, units.Fahrenheit, unit),
		TempLow:        units.FormatTemperature(b.low, units.Fahrenheit, unit),
		IconCode:       b.first.ConditionIcon,
	}
}

// Aggregate groups samples by their calendar date in local time and returns
// one summary per date. See AggregateIn.
func Aggregate(samples []weather.ForecastSample, unit units.Temperature) []DailySummary {
	return AggregateIn(samples, unit, time.Local)
}

// AggregateIn groups samples by their calendar date in loc, in order of first
// appearance, and returns at most MaxDays summaries. High and low are the
// extremes of the day's temperatures; condition and icon come from the first
// sample of the day. Temperatures are read as Fahrenheit and rendered in unit.
func AggregateIn(samples []weather.ForecastSample, unit units.Temperature, loc *time.Location) []DailySummary {
	if loc == nil {
		loc = time.Local
	}

	buckets := make([]*bucket, 0, MaxDays)
	index := make(map[string]*bucket)
	for _, sample := range samples {
		date := sample.Time(loc)
		key := date.Format(dateKeyLayout)
		if b, ok := index[key]; ok {
			b.add(sample)
			continue
		}
		// dates beyond MaxDays are dropped
		if len(buckets) == MaxDays {
			continue
		}
		b := &bucket{first: sample, date: date, high: sample.TemperatureF, low: sample.TemperatureF}
		index[key] = b
		buckets = append(buckets, b)
	}

	summaries := make([]DailySummary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, b.summary(unit))
	}
	return summaries
}

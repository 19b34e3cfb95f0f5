// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"testing"
	"time"

	"github.com/wneessen/ambience/internal/units"
	"github.com/wneessen/ambience/internal/weather"
)

func sample(ts time.Time, temp float64, description, icon string) weather.ForecastSample {
	return weather.ForecastSample{
		Timestamp:            ts.Unix(),
		TemperatureF:         temp,
		ConditionMain:        "Clouds",
		ConditionDescription: description,
		ConditionIcon:        icon,
	}
}

func TestAggregateIn(t *testing.T) {
	t.Run("empty input yields an empty result", func(t *testing.T) {
		got := AggregateIn(nil, units.Fahrenheit, time.UTC)
		if got == nil {
			t.Fatal("expected result to be non-nil")
		}
		if len(got) != 0 {
			t.Errorf("expected no summaries, got %d", len(got))
		}
	})
	t.Run("samples are grouped per day with high and low", func(t *testing.T) {
		samples := []weather.ForecastSample{
			sample(time.Date(2021, 12, 1, 12, 0, 0, 0, time.UTC), 20, "clear sky", "01d"),
			sample(time.Date(2021, 12, 1, 15, 0, 0, 0, time.UTC), 25, "scattered clouds", "03d"),
			sample(time.Date(2021, 12, 2, 12, 0, 0, 0, time.UTC), 18, "scattered clouds", "03d"),
		}
		got := AggregateIn(samples, units.Fahrenheit, time.UTC)
		if len(got) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(got))
		}
		first := got[0]
		if first.TempHigh != "25" {
			t.Errorf("expected high to be %q, got %q", "25", first.TempHigh)
		}
		if first.TempLow != "20" {
			t.Errorf("expected low to be %q, got %q", "20", first.TempLow)
		}
		if first.DayName != "Wednesday" {
			t.Errorf("expected day name to be %q, got %q", "Wednesday", first.DayName)
		}
		if first.DateLabel != "Dec 1" {
			t.Errorf("expected date label to be %q, got %q", "Dec 1", first.DateLabel)
		}
		if first.ConditionLabel != "Clear sky" {
			t.Errorf("expected first sample condition %q, got %q", "Clear sky", first.ConditionLabel)
		}
		if first.IconCode != "01d" {
			t.Errorf("expected first sample icon %q, got %q", "01d", first.IconCode)
		}
		second := got[1]
		if second.DayName != "Thursday" || second.TempHigh != "18" || second.TempLow != "18" {
			t.Errorf("unexpected second summary: %+v", second)
		}
	})
	t.Run("temperatures are converted to the target unit", func(t *testing.T) {
		samples := []weather.ForecastSample{
			sample(time.Date(2021, 12, 1, 12, 0, 0, 0, time.UTC), 68, "light rain", "10d"),
			sample(time.Date(2021, 12, 1, 15, 0, 0, 0, time.UTC), 32, "light rain", "10d"),
		}
		got := AggregateIn(samples, units.Celsius, time.UTC)
		if len(got) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(got))
		}
		if got[0].TempHigh != "20" || got[0].TempLow != "0" {
			t.Errorf("expected 20/0, got %s/%s", got[0].TempHigh, got[0].TempLow)
		}
	})
	t.Run("result is truncated to five days", func(t *testing.T) {
		var samples []weather.ForecastSample
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 7*8; i++ {
			samples = append(samples, sample(start.Add(time.Duration(i)*3*time.Hour), float64(i), "mist", "50d"))
		}
		got := AggregateIn(samples, units.Fahrenheit, time.UTC)
		if len(got) != MaxDays {
			t.Fatalf("expected %d summaries, got %d", MaxDays, len(got))
		}
		wantLabels := []string{"Mar 1", "Mar 2", "Mar 3", "Mar 4", "Mar 5"}
		for i, summary := range got {
			if summary.DateLabel != wantLabels[i] {
				t.Errorf("summary %d: expected %q, got %q", i, wantLabels[i], summary.DateLabel)
			}
		}
		// day three holds samples 16 to 23
		if got[2].TempLow != "16" || got[2].TempHigh != "23" {
			t.Errorf("expected 16/23 for day three, got %s/%s", got[2].TempLow, got[2].TempHigh)
		}
	})
	t.Run("days are grouped in the given location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		samples := []weather.ForecastSample{
			sample(time.Date(2021, 12, 1, 20, 0, 0, 0, time.UTC), 40, "snow", "13n"),
			sample(time.Date(2021, 12, 1, 23, 0, 0, 0, time.UTC), 30, "snow", "13n"),
		}
		got := AggregateIn(samples, units.Fahrenheit, loc)
		if len(got) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(got))
		}
		if got[1].DayName != "Thursday" {
			t.Errorf("expected the late sample to fall on Thursday, got %s", got[1].DayName)
		}
	})
	t.Run("groups keep the order of first appearance", func(t *testing.T) {
		samples := []weather.ForecastSample{
			sample(time.Date(2021, 12, 2, 12, 0, 0, 0, time.UTC), 10, "rain", "10d"),
			sample(time.Date(2021, 12, 1, 12, 0, 0, 0, time.UTC), 20, "rain", "10d"),
			sample(time.Date(2021, 12, 2, 15, 0, 0, 0, time.UTC), 5, "rain", "10d"),
		}
		got := AggregateIn(samples, units.Fahrenheit, time.UTC)
		if len(got) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(got))
		}
		if got[0].DateLabel != "Dec 2" || got[0].TempLow != "5" {
			t.Errorf("unexpected first summary: %+v", got[0])
		}
	})
}

func TestAggregate(t *testing.T) {
	samples := []weather.ForecastSample{
		sample(time.Date(2021, 12, 1, 12, 0, 0, 0, time.UTC), 20, "clear sky", "01d"),
	}
	got := Aggregate(samples, units.Fahrenheit)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].TempHigh != "20" {
		t.Errorf("expected high to be %q, got %q", "20", got[0].TempHigh)
	}
}

package weather

import (
	"strconv"
	"strings"
)

// HourSlot is one sample of the 3-hourly breakdown of a day.
type HourSlot struct {
	Time                string   `json:"time"`
	TemperatureC        *float64 `json:"temperatureC,omitempty"`
	PrecipitationMm     *float64 `json:"precipitationMm,omitempty"`
	CloudCoverPct       *float64 `json:"cloudCoverPct,omitempty"`
	RelativeHumidityPct *float64 `json:"relativeHumidityPct,omitempty"`
	Icon                Icon     `json:"icon"`
}

// DayOutlook is the detailed view of one day of a destination's forecast.
type DayOutlook struct {
	Date            string     `json:"date"`
	MaxTemperatureC float64    `json:"maxTemperatureC"`
	PrecipitationMm float64    `json:"precipitationMm"`
	MaxRainMm       float64    `json:"maxRainMm"`
	AvgCloudPct     *float64   `json:"avgCloudPct,omitempty"`
	Icon            Icon       `json:"icon"`
	Slots           []HourSlot `json:"slots,omitempty"`
}

// PeriodStats summarises a whole trip window.
type PeriodStats struct {
	Days            int      `json:"days"`
	AvgTemperatureC float64  `json:"avgTemperatureC"`
	TotalRainMm     float64  `json:"totalRainMm"`
	AvgCloudPct     *float64 `json:"avgCloudPct,omitempty"`
}

// AggregatePeriod averages the first windowDays days of a forecast. Days is
// zero when there is nothing to aggregate.
func AggregatePeriod(f Forecast, windowDays int) PeriodStats {
	days := min(windowDays, len(f.Daily.Time), len(f.Daily.MaxTemperatureC), len(f.Daily.PrecipitationMm))
	if days <= 0 {
		return PeriodStats{}
	}

	var sumTemp, sumRain float64
	for i := 0; i < days; i++ {
		sumTemp += f.Daily.MaxTemperatureC[i]
		sumRain += f.Daily.PrecipitationMm[i]
	}

	return PeriodStats{
		Days:            days,
		AvgTemperatureC: sumTemp / float64(days),
		TotalRainMm:     sumRain,
		AvgCloudPct:     averageCloud(f.Daily.Time, days, f.Hourly),
	}
}

// DayOutlooks builds the per-day view for the first windowDays days. Each day's
// icon combines the daily rain total with that day's hourly samples.
func DayOutlooks(f Forecast, windowDays int) []DayOutlook {
	days := min(windowDays, len(f.Daily.Time), len(f.Daily.MaxTemperatureC))
	if days <= 0 {
		return nil
	}

	out := make([]DayOutlook, 0, days)
	for i := 0; i < days; i++ {
		date := f.Daily.Time[i]
		var rain float64
		if i < len(f.Daily.PrecipitationMm) {
			rain = f.Daily.PrecipitationMm[i]
		}

		maxRain, cloud := dayHourlyStats(f.Hourly, date, rain)
		out = append(out, DayOutlook{
			Date:            date,
			MaxTemperatureC: f.Daily.MaxTemperatureC[i],
			PrecipitationMm: rain,
			MaxRainMm:       maxRain,
			AvgCloudPct:     cloud,
			Icon:            ClassifyDay(maxRain, cloud),
			Slots:           hourSlots(f.Hourly, date),
		})
	}
	return out
}

func dayHourlyStats(h *HourlySeries, date string, dailyRain float64) (float64, *float64) {
	maxRain := dailyRain
	if h == nil {
		return maxRain, nil
	}

	var sum float64
	var n int
	for i, ts := range h.Time {
		if datePart(ts) != date {
			continue
		}
		if c := at(h.CloudCoverPct, i); c != nil {
			sum += *c
			n++
		}
		if r := at(h.PrecipitationMm, i); r != nil && *r > maxRain {
			maxRain = *r
		}
	}
	if n == 0 {
		return maxRain, nil
	}
	avg := sum / float64(n)
	return maxRain, &avg
}

func hourSlots(h *HourlySeries, date string) []HourSlot {
	if h == nil {
		return nil
	}
	var out []HourSlot
	for i, ts := range h.Time {
		d, clock, ok := strings.Cut(ts, "T")
		if !ok || d != date || len(clock) < 5 {
			continue
		}
		hour, err := strconv.Atoi(clock[:2])
		if err != nil || hour%3 != 0 {
			continue
		}
		cloud := at(h.CloudCoverPct, i)
		rain := at(h.PrecipitationMm, i)
		out = append(out, HourSlot{
			Time:                clock[:5],
			TemperatureC:        at(h.TemperatureC, i),
			PrecipitationMm:     rain,
			CloudCoverPct:       cloud,
			RelativeHumidityPct: at(h.RelativeHumidityPct, i),
			Icon:                ClassifyHour(cloud, rain),
		})
	}
	return out
}

func at(vals []*float64, i int) *float64 {
	if i < 0 || i >= len(vals) {
		return nil
	}
	return vals[i]
}

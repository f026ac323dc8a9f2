package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(n int) []string {
	all := []string{
		"2025-01-10", "2025-01-11", "2025-01-12", "2025-01-13", "2025-01-14",
		"2025-01-15", "2025-01-16", "2025-01-17", "2025-01-18", "2025-01-19",
	}
	return all[:n]
}

// hourlyCloud builds a series with one midday sample per date.
func hourlyCloud(days []string, cloud ...float64) *HourlySeries {
	h := &HourlySeries{}
	for i, d := range days {
		h.Time = append(h.Time, d+"T12:00")
		h.CloudCoverPct = append(h.CloudCoverPct, f64(cloud[i]))
		h.PrecipitationMm = append(h.PrecipitationMm, f64(0))
	}
	return h
}

func TestAnalyzeCloudyButDryShortCircuits(t *testing.T) {
	d := dates(3)
	daily := DailySeries{
		Time:            d,
		MaxTemperatureC: []float64{30, 30, 30},
		PrecipitationMm: []float64{1, 1, 1},
	}

	got := Analyze(daily, 3, hourlyCloud(d, 75, 75, 75))

	assert.Equal(t, "Molnigt men torrt", got.Label)
	assert.Contains(t, got.Message, "30.0°C")
}

func TestAnalyzeRules(t *testing.T) {
	tests := []struct {
		name   string
		temps  []float64
		rain   []float64
		cloud  []float64
		window int
		want   string
	}{
		{"sun guaranteed", []float64{30, 31}, []float64{0, 0}, []float64{20, 20}, 2, "Sol-säkert"},
		{"mostly good without hourly data", []float64{30, 30, 30, 30}, []float64{0, 0, 0, 0}, nil, 4, "Mestadels bra"},
		{"rainier period", []float64{26, 26}, []float64{12, 12}, nil, 2, "Regnigare period"},
		{"okay default", []float64{26, 26}, []float64{3, 3}, nil, 2, "Okej väder"},
		{"window clamped to data", []float64{26, 26}, []float64{3, 3}, nil, 10, "Okej väder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dates(len(tt.temps))
			daily := DailySeries{Time: d, MaxTemperatureC: tt.temps, PrecipitationMm: tt.rain}
			var h *HourlySeries
			if tt.cloud != nil {
				h = hourlyCloud(d, tt.cloud...)
			}
			assert.Equal(t, tt.want, Analyze(daily, tt.window, h).Label)
		})
	}
}

func TestAnalyzeNoForecast(t *testing.T) {
	assert.Equal(t, NoForecast, Analyze(DailySeries{}, 4, nil))

	daily := DailySeries{Time: dates(2), MaxTemperatureC: []float64{30, 30}}
	assert.Equal(t, NoForecast, Analyze(daily, 2, nil), "precipitation missing")

	daily.PrecipitationMm = []float64{0, 0}
	assert.Equal(t, NoForecast, Analyze(daily, 0, nil), "empty window")
}

func TestAverageCloudUsesWindowDatesOnly(t *testing.T) {
	d := dates(2)
	daily := DailySeries{Time: d, MaxTemperatureC: []float64{30, 30}, PrecipitationMm: []float64{0, 0}}
	h := hourlyCloud(d, 10, 100)

	got := AverageCloud(daily, 1, h)
	require.NotNil(t, got)
	assert.InDelta(t, 10, *got, 1e-9)

	h.CloudCoverPct[0] = nil
	assert.Nil(t, AverageCloud(daily, 1, h), "missing samples are skipped, not zero")
	assert.Nil(t, AverageCloud(daily, 2, nil))
}

func TestShortPrecipitationClampsScoreAndAnalysis(t *testing.T) {
	d := dates(10)
	daily := DailySeries{
		Time:            d,
		MaxTemperatureC: []float64{30, 31, 29, 40, 40, 40, 40, 40, 40, 40},
		PrecipitationMm: []float64{1, 0, 1},
		MaxWindSpeedKmh: []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
	}
	h := hourlyCloud(d, 80, 80, 80, 0, 0, 0, 0, 0, 0, 0)

	got := Score(daily, 10, Destination{}, Preferences{}, PriorityWeather, nil)
	assert.InDelta(t, 10, got.WeatherScore, 1e-9)
	assert.InDelta(t, 12, got.TotalScore, 1e-9)

	c := Analyze(daily, 10, h)
	assert.Equal(t, "Molnigt men torrt", c.Label, "cloud averaged over three dates only")
	assert.Contains(t, c.Message, "Ca 30.0°C")
}

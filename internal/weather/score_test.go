package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDaily() DailySeries {
	return DailySeries{
		Time:            dates(3),
		MaxTemperatureC: []float64{30, 31, 29},
		PrecipitationMm: []float64{1, 0, 2},
		MaxWindSpeedKmh: []float64{10, 15, 20},
	}
}

func TestScoreWithDefaults(t *testing.T) {
	// Each day: temp +3, rain +4, wind +2, probability 50 -> 0, UV 7 -> +1.
	got := Score(sampleDaily(), 3, Destination{}, Preferences{}, PriorityWeather, nil)

	assert.InDelta(t, 10, got.WeatherScore, 1e-9)
	assert.InDelta(t, 0, got.PreferenceScore, 1e-9)
	assert.InDelta(t, 12, got.TotalScore, 1e-9)
	assert.Equal(t, 50, got.MatchPercent)
}

func TestScoreClampsWindow(t *testing.T) {
	want := Score(sampleDaily(), 3, Destination{}, Preferences{}, PriorityWeather, nil)
	got := Score(sampleDaily(), 10, Destination{}, Preferences{}, PriorityWeather, nil)
	assert.Equal(t, want, got)

	short := sampleDaily()
	short.MaxWindSpeedKmh = short.MaxWindSpeedKmh[:1]
	got = Score(short, 3, Destination{}, Preferences{}, PrioritySun, nil)
	// Only the first day counts.
	assert.InDelta(t, 10, got.WeatherScore, 1e-9)
}

func TestScorePerEntryDefaults(t *testing.T) {
	daily := DailySeries{
		Time:                     dates(2),
		MaxTemperatureC:          []float64{30, 30},
		PrecipitationMm:          []float64{0, 0},
		MaxWindSpeedKmh:          []float64{10, 10},
		PrecipitationProbability: []*float64{nil, f64(10)},
		UVIndexMax:               []*float64{nil, f64(2)},
	}

	got := Score(daily, 2, Destination{}, Preferences{}, PrioritySun, nil)

	// Day one: 3+4+2+0+1 = 10. Day two: 3+4+2+1.5-1 = 9.5.
	assert.InDelta(t, 9.75, got.WeatherScore, 1e-9)
	assert.InDelta(t, 9.75, got.TotalScore, 1e-9)
}

func TestScoreSunPreferenceAndPriority(t *testing.T) {
	bright := 30.0
	got := Score(sampleDaily(), 3, Destination{}, Preferences{Sun: true}, PrioritySun, &bright)

	// Sun bonus 10*0.3 + 2, sun priority +2.5.
	assert.InDelta(t, 7.5, got.PreferenceScore, 1e-9)
	assert.InDelta(t, 17.5, got.TotalScore, 1e-9)
	assert.Equal(t, 73, got.MatchPercent)

	overcast := 80.0
	got = Score(sampleDaily(), 3, Destination{}, Preferences{Sun: true}, PrioritySun, &overcast)
	assert.InDelta(t, 3-2-1.5, got.PreferenceScore, 1e-9)

	// 60-70 sits in the gap of both adjustments.
	gap := 65.0
	got = Score(sampleDaily(), 3, Destination{}, Preferences{Sun: true}, PrioritySun, &gap)
	assert.InDelta(t, 3, got.PreferenceScore, 1e-9)
}

func TestScoreTagPreferencesIgnoreCase(t *testing.T) {
	dest := Destination{Tags: []string{"NIGHTLIFE", "Dykning", "Lugn"}}
	prefs := Preferences{Party: true, Diving: true, Surf: true, Chill: true}

	got := Score(sampleDaily(), 3, dest, prefs, PriorityWeather, nil)

	// party, diving and chill match; surf does not.
	assert.InDelta(t, 6, got.PreferenceScore, 1e-9)
	assert.InDelta(t, 12+6, got.TotalScore, 1e-9)
}

func TestScoreEmpty(t *testing.T) {
	assert.Equal(t, ScoreResult{}, Score(DailySeries{}, 4, Destination{}, Preferences{Sun: true}, PriorityWeather, nil))
	assert.Equal(t, ScoreResult{}, Score(sampleDaily(), 0, Destination{}, Preferences{}, PriorityWeather, nil))
}

func TestMatchPercent(t *testing.T) {
	assert.Equal(t, 45, MatchPercent(10.8))
	assert.Equal(t, 0, MatchPercent(-5))
	assert.Equal(t, 100, MatchPercent(30))
	assert.Equal(t, 0, MatchPercent(math.NaN()))
}

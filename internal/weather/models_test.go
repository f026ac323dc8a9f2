package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePreferences(t *testing.T) {
	p, unknown := ParsePreferences(" Sun,diving, ,karaoke")

	assert.Equal(t, Preferences{Sun: true, Diving: true}, p)
	assert.Equal(t, []string{"karaoke"}, unknown)
	assert.Equal(t, []Preference{PreferenceSun, PreferenceDiving}, p.Active())

	p, unknown = ParsePreferences("")
	assert.Equal(t, Preferences{}, p)
	assert.Empty(t, unknown)
}

func TestDailySeriesDefaults(t *testing.T) {
	d := DailySeries{
		PrecipitationProbability: []*float64{f64(10)},
		UVIndexMax:               []*float64{nil},
	}

	assert.InDelta(t, 10, d.ProbabilityAt(0), 1e-9)
	assert.InDelta(t, 50, d.ProbabilityAt(3), 1e-9)
	assert.InDelta(t, 7, d.UVIndexAt(0), 1e-9)
	assert.True(t, d.Empty())
}

func TestBasePriorityValid(t *testing.T) {
	assert.True(t, PriorityWeather.Valid())
	assert.True(t, PrioritySun.Valid())
	assert.False(t, BasePriority("beach").Valid())
}

func TestIconLabel(t *testing.T) {
	assert.Equal(t, "sunny", IconSunny.Label())
	assert.Equal(t, "light rain", IconLightRain.Label())
	assert.Equal(t, "unknown", Icon("?").Label())
}

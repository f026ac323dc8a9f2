package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(temp float64, icons ...Icon) []DayRecord {
	out := make([]DayRecord, len(icons))
	for i, ic := range icons {
		out[i] = DayRecord{Date: dates(6)[i], TemperatureC: temp, Icon: ic}
	}
	return out
}

func TestPlanRouteMissingDataGoesLast(t *testing.T) {
	a := Destination{ID: "a", Name: "A"}
	b := Destination{ID: "b", Name: "B"}
	forecasts := map[string][]DayRecord{
		"a": records(0, IconSunny, IconSunny, IconSunny),
	}

	assert.Equal(t, []Destination{a, b}, PlanRoute([]Destination{a, b}, forecasts))
	assert.Equal(t, []Destination{a, b}, PlanRoute([]Destination{b, a}, forecasts))
}

func TestPlanRouteStableAndIdempotent(t *testing.T) {
	a := Destination{ID: "a"}
	b := Destination{ID: "b"}
	c := Destination{ID: "c"}
	forecasts := map[string][]DayRecord{
		"a": records(30, IconSunny, IconRain),
		"b": records(30, IconSunny, IconRain),
		"c": records(30, IconSunny, IconSunny),
	}

	got := PlanRoute([]Destination{a, b, c}, forecasts)
	require.Equal(t, []Destination{c, a, b}, got)
	assert.Equal(t, got, PlanRoute(got, forecasts))
	assert.ElementsMatch(t, []Destination{a, b, c}, got)
}

func TestPlanRouteSmallInputs(t *testing.T) {
	assert.Empty(t, PlanRoute(nil, nil))
	one := []Destination{{ID: "x"}}
	assert.Equal(t, one, PlanRoute(one, nil))
}

func TestSummarize(t *testing.T) {
	boracay := Destination{ID: "boracay", Name: "Boracay"}
	coron := Destination{ID: "coron", Name: "Coron"}
	siargao := Destination{ID: "siargao", Name: "Siargao"}

	forecasts := map[string][]DayRecord{
		"boracay": records(30, IconSunny, IconPartlyCloudy, IconRain),
		"siargao": records(29, IconSunny, IconSunny, IconLightRain),
	}

	got := Summarize([]Destination{boracay, coron, siargao}, forecasts)

	assert.Equal(t,
		"Boracay: ca 30.0°C, 1 soldagar, 1 molniga, 1 regniga. "+
			"Coron: ingen väderdata ännu. "+
			"Siargao: ca 29.0°C, 2 soldagar, 0 molniga, 0 regniga."+
			"\n\n🔍 Rekommendation just nu: Siargao ser starkast ut vädermässigt under perioden.",
		got)
}

func TestSummarizeEdgeCases(t *testing.T) {
	assert.Equal(t, noFollowsMessage, Summarize(nil, nil))

	got := Summarize([]Destination{{ID: "x", Name: "X"}}, nil)
	assert.Equal(t, "X: ingen väderdata ännu.", got, "no recommendation without data")

	// Ties go to the first destination.
	a := Destination{ID: "a", Name: "A"}
	b := Destination{ID: "b", Name: "B"}
	forecasts := map[string][]DayRecord{
		"a": records(30, IconSunny),
		"b": records(30, IconSunny),
	}
	assert.Contains(t, Summarize([]Destination{a, b}, forecasts), "Rekommendation just nu: A ")
}

func TestSimplifyForecast(t *testing.T) {
	daily := DailySeries{
		Time:            dates(3),
		MaxTemperatureC: []float64{30, 29},
		PrecipitationMm: []float64{9, 1, 0},
	}

	got := SimplifyForecast(daily, 5)

	require.Len(t, got, 2)
	assert.Equal(t, DayRecord{Date: "2025-01-10", TemperatureC: 30, PrecipitationMm: 9, Icon: IconRain}, got[0])
	assert.Equal(t, IconSunny, got[1].Icon)
	assert.Nil(t, SimplifyForecast(DailySeries{}, 3))
}

package weather

import (
	"fmt"
	"sort"
	"strings"
)

// missingScore ranks destinations without forecast data last.
const missingScore = -999.0

const noFollowsMessage = "Inga följda öar än. Följ några för att få en sammanfattning."

type dayCounts struct {
	sunny, partlyCloudy, rain int
	avgTemp                   float64
}

func countDays(days []DayRecord) dayCounts {
	var c dayCounts
	var sum float64
	for _, d := range days {
		switch d.Icon {
		case IconSunny:
			c.sunny++
		case IconPartlyCloudy:
			c.partlyCloudy++
		case IconRain:
			c.rain++
		}
		sum += d.TemperatureC
	}
	if len(days) > 0 {
		c.avgTemp = sum / float64(len(days))
	}
	return c
}

// Summarize builds a short narrative over the followed destinations: one line
// per destination and a recommendation for the strongest one.
func Summarize(dests []Destination, forecasts map[string][]DayRecord) string {
	if len(dests) == 0 {
		return noFollowsMessage
	}

	lines := make([]string, 0, len(dests))
	var (
		best      *Destination
		bestScore = missingScore
	)
	for i := range dests {
		d := &dests[i]
		days := forecasts[d.ID]
		if len(days) == 0 {
			lines = append(lines, fmt.Sprintf("%s: ingen väderdata ännu.", d.Name))
			continue
		}

		c := countDays(days)
		lines = append(lines, fmt.Sprintf("%s: ca %.1f°C, %d soldagar, %d molniga, %d regniga.",
			d.Name, c.avgTemp, c.sunny, c.partlyCloudy, c.rain))

		score := float64(c.sunny*2 - c.rain)
		if best == nil || score > bestScore {
			best, bestScore = d, score
		}
	}

	text := strings.Join(lines, " ")
	if best == nil {
		return text
	}
	return text + fmt.Sprintf("\n\n🔍 Rekommendation just nu: %s ser starkast ut vädermässigt under perioden.", best.Name)
}

// PlanRoute orders destinations by forecast quality, best first. Ties keep
// their input order and destinations without data go last.
func PlanRoute(dests []Destination, forecasts map[string][]DayRecord) []Destination {
	if len(dests) <= 1 {
		return dests
	}

	type scored struct {
		dest  Destination
		score float64
	}
	items := make([]scored, len(dests))
	for i, d := range dests {
		items[i] = scored{dest: d, score: routeScore(forecasts[d.ID])}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	out := make([]Destination, len(items))
	for i, it := range items {
		out[i] = it.dest
	}
	return out
}

func routeScore(days []DayRecord) float64 {
	if len(days) == 0 {
		return missingScore
	}
	c := countDays(days)
	return float64(c.sunny*3-c.rain*2) + c.avgTemp*0.1
}

// SimplifyForecast projects the first windowDays days of a daily series onto
// DayRecords, classifying each day from rain alone.
func SimplifyForecast(daily DailySeries, windowDays int) []DayRecord {
	n := min(windowDays, len(daily.Time), len(daily.MaxTemperatureC), len(daily.PrecipitationMm))
	if n <= 0 {
		return nil
	}
	out := make([]DayRecord, n)
	for i := 0; i < n; i++ {
		rain := daily.PrecipitationMm[i]
		out[i] = DayRecord{
			Date:            daily.Time[i],
			TemperatureC:    daily.MaxTemperatureC[i],
			PrecipitationMm: rain,
			Icon:            ClassifyDay(rain, nil),
		}
	}
	return out
}

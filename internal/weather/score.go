package weather

import (
	"math"

	"github.com/pinoyinvestor/travelhunter/internal/common"
)

// MaxScore is the fixed ceiling used to normalise a total score into a match
// percentage.
const MaxScore = 24.0

const tagBonus = 2.0

// tagKeywords lists the tag substrings that earn the bonus for each
// keyword-based preference.
var tagKeywords = map[Preference][]string{
	PreferenceParty:  {"nightlife"},
	PreferenceDiving: {"dykning"},
	PreferenceSurf:   {"surf"},
	PreferenceChill:  {"chill", "lugn"},
}

// Score rates a destination's forecast for a trip window of windowDays days
// against the caller's preferences. avgCloud is the window's mean cloud cover
// in percent, nil when unknown.
func Score(
	daily DailySeries,
	windowDays int,
	dest Destination,
	prefs Preferences,
	priority BasePriority,
	avgCloud *float64,
) ScoreResult {
	if daily.Empty() {
		return ScoreResult{}
	}

	days := min(windowDays, len(daily.MaxTemperatureC), len(daily.PrecipitationMm), len(daily.MaxWindSpeedKmh))
	if days <= 0 {
		return ScoreResult{}
	}

	var total float64
	for i := 0; i < days; i++ {
		total += dayPoints(
			daily.MaxTemperatureC[i],
			daily.PrecipitationMm[i],
			daily.MaxWindSpeedKmh[i],
			daily.ProbabilityAt(i),
			daily.UVIndexAt(i),
		)
	}
	weatherScore := total / float64(days)

	var bonus float64
	for _, p := range prefs.Active() {
		if p == PreferenceSun {
			bonus += weatherScore * 0.3
			if avgCloud != nil {
				switch {
				case *avgCloud < 40:
					bonus += 2
				case *avgCloud > 70:
					bonus -= 2
				}
			}
			continue
		}
		if common.AnyHasAny(dest.Tags, tagKeywords[p]...) {
			bonus += tagBonus
		}
	}

	weatherWeight := 1.0
	var extraSun float64
	switch priority {
	case PriorityWeather:
		weatherWeight = 1.2
	case PrioritySun:
		if avgCloud != nil {
			switch {
			case *avgCloud < 40:
				extraSun = 2.5
			case *avgCloud < 60:
				extraSun = 1
			case *avgCloud > 75:
				extraSun = -1.5
			}
		}
	}

	preferenceScore := bonus + extraSun
	totalScore := weatherScore*weatherWeight + preferenceScore

	return ScoreResult{
		WeatherScore:    weatherScore,
		PreferenceScore: preferenceScore,
		TotalScore:      totalScore,
		MatchPercent:    MatchPercent(totalScore),
	}
}

// MatchPercent projects a total score onto 0-100 against MaxScore.
func MatchPercent(totalScore float64) int {
	if math.IsNaN(totalScore) {
		return 0
	}
	pct := math.Round(totalScore / MaxScore * 100)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

func dayPoints(tempC, rainMm, windKmh, probPct, uv float64) float64 {
	var p float64

	switch {
	case tempC >= 27 && tempC <= 33:
		p += 3
	case tempC >= 25 && tempC < 27:
		p += 2
	case tempC > 33 && tempC <= 35:
		p++
	}

	switch {
	case rainMm < 3:
		p += 4
	case rainMm < 8:
		p += 2
	case rainMm > 15:
		p -= 2
	}

	switch {
	case windKmh <= 25:
		p += 2
	case windKmh > 40:
		p--
	}

	switch {
	case probPct < 20:
		p += 1.5
	case probPct > 70:
		p -= 2
	}

	switch {
	case uv >= 7 && uv <= 10:
		p++
	case uv <= 3:
		p--
	}

	return p
}

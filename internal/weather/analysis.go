package weather

import "fmt"

// neutralCloud is assumed when no hourly cloud cover matches the window.
const neutralCloud = 50.0

// NoForecast is returned by Analyze when there is no daily data.
var NoForecast = Classification{
	Label:   "Ingen prognos",
	Emoji:   "ℹ️",
	Title:   "Ingen väderprognos",
	Message: "Det finns ingen prognos för dessa datum.",
}

type periodStats struct {
	days      int
	avgTemp   float64
	avgRain   float64
	avgCloud  float64
	sunnyDays int
	rainyDays int
}

type analysisRule struct {
	when  func(s periodStats) bool
	build func(s periodStats) Classification
}

var analysisRules = []analysisRule{
	{
		when: func(s periodStats) bool { return s.avgCloud >= 70 && s.avgRain < 2 },
		build: func(s periodStats) Classification {
			return Classification{
				Label:   "Molnigt men torrt",
				Emoji:   "🌥️",
				Title:   "Molnigare dagar",
				Message: fmt.Sprintf("Mestadels molnigt men nästan inget regn. Ca %.1f°C i snitt.", s.avgTemp),
			}
		},
	},
	{
		when: func(s periodStats) bool {
			return s.sunnyDays >= s.days-1 && s.avgRain < 2 && s.avgCloud < 40
		},
		build: func(s periodStats) Classification {
			return Classification{
				Label: "Sol-säkert",
				Emoji: "☀️",
				Title: "Sol-säkert äventyr",
				Message: fmt.Sprintf("Nästan bara sol under perioden (≈ %.1f°C). "+
					"Perfekt för strand, ö-hoppning och fotosessioner.", s.avgTemp),
			}
		},
	},
	{
		when: func(s periodStats) bool { return s.sunnyDays >= s.days/2 && s.avgRain < 6 },
		build: func(periodStats) Classification {
			return Classification{
				Label: "Mestadels bra",
				Emoji: "⛅",
				Title: "Mestadels bra väder",
				Message: "En mix av sol och flera torrperioder, men med några regnskurar. " +
					"Funkar för både utflykter och chill.",
			}
		},
	},
	{
		when: func(s periodStats) bool { return s.avgRain >= 8 || s.rainyDays >= s.days/2 },
		build: func(periodStats) Classification {
			return Classification{
				Label: "Regnigare period",
				Emoji: "🌧️",
				Title: "Regnigare period",
				Message: "Ganska mycket regn i prognosen. " +
					"Bättre om ni tänkt dyka, chilla eller inte är superväderkänsliga.",
			}
		},
	},
	{
		when: func(periodStats) bool { return true },
		build: func(periodStats) Classification {
			return Classification{
				Label: "Okej väder",
				Emoji: "🌤️",
				Title: "Okej väder",
				Message: "Vädret ser helt okej ut, inte super-soligt men heller inte dåligt. " +
					"En bra allround-period.",
			}
		},
	},
}

// Analyze classifies the weather of a trip window of windowDays days.
func Analyze(daily DailySeries, windowDays int, hourly *HourlySeries) Classification {
	if daily.Empty() {
		return NoForecast
	}

	days := min(windowDays, len(daily.MaxTemperatureC), len(daily.PrecipitationMm))
	if days <= 0 {
		return NoForecast
	}

	s := periodStats{days: days}
	var totalTemp, totalRain float64
	for i := 0; i < days; i++ {
		t := daily.MaxTemperatureC[i]
		p := daily.PrecipitationMm[i]
		totalTemp += t
		totalRain += p

		if p < 2 && t >= 28 && t <= 33 {
			s.sunnyDays++
		}
		if p > 10 {
			s.rainyDays++
		}
	}
	s.avgTemp = totalTemp / float64(days)
	s.avgRain = totalRain / float64(days)

	s.avgCloud = neutralCloud
	if c := averageCloud(daily.Time, days, hourly); c != nil {
		s.avgCloud = *c
	}

	for _, r := range analysisRules {
		if r.when(s) {
			return r.build(s)
		}
	}
	return NoForecast
}

// AverageCloud returns the mean hourly cloud cover over the first windowDays
// dates of the daily series, or nil when no sample falls in that window.
func AverageCloud(daily DailySeries, windowDays int, hourly *HourlySeries) *float64 {
	return averageCloud(daily.Time, windowDays, hourly)
}

func averageCloud(dates []string, days int, hourly *HourlySeries) *float64 {
	if hourly == nil || days <= 0 {
		return nil
	}
	window := make(map[string]struct{}, days)
	for _, d := range dates[:min(days, len(dates))] {
		window[d] = struct{}{}
	}

	var sum float64
	var n int
	for i, ts := range hourly.Time {
		if _, ok := window[datePart(ts)]; !ok {
			continue
		}
		if i >= len(hourly.CloudCoverPct) || hourly.CloudCoverPct[i] == nil {
			continue
		}
		sum += *hourly.CloudCoverPct[i]
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

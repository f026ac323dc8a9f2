package weather

import (
	"strings"
	"time"
)

// Icon is the qualitative weather condition shown for a day or an hour.
type Icon string

const (
	IconSunny        Icon = "☀️"
	IconPartlyCloudy Icon = "⛅"
	IconCloudy       Icon = "☁️"
	IconLightRain    Icon = "🌦️"
	IconRain         Icon = "🌧️"
)

// Label returns a short English name for the icon.
func (i Icon) Label() string {
	switch i {
	case IconSunny:
		return "sunny"
	case IconPartlyCloudy:
		return "partly cloudy"
	case IconCloudy:
		return "cloudy"
	case IconLightRain:
		return "light rain"
	case IconRain:
		return "rain"
	default:
		return "unknown"
	}
}

// HotelBudget holds nightly price bands in SEK. Any band may be unknown.
type HotelBudget struct {
	Low  *int `json:"low,omitempty"`
	Mid  *int `json:"mid,omitempty"`
	High *int `json:"high,omitempty"`
}

// Activity is a point of interest at a destination.
type Activity struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Note string  `json:"note,omitempty"`
}

// Destination is a static catalog entry. Tags are free text and matched
// case-insensitively by substring.
type Destination struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Region      string       `json:"region"`
	Tags        []string     `json:"tags"`
	Airport     string       `json:"airport"`
	IATACode    string       `json:"iataCode"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	Description string       `json:"description"`
	HotelBudget *HotelBudget `json:"hotelBudget,omitempty"`
	Activities  []Activity   `json:"activities,omitempty"`
}

// DailySeries holds day-indexed observations for one destination, ordered by
// date. All slices are aligned by position; they may differ in length and
// consumers must clamp to the shortest one they read.
type DailySeries struct {
	Time                     []string   `json:"time"`
	MaxTemperatureC          []float64  `json:"temperature_2m_max"`
	PrecipitationMm          []float64  `json:"precipitation_sum"`
	MaxWindSpeedKmh          []float64  `json:"windspeed_10m_max"`
	PrecipitationProbability []*float64 `json:"precipitation_probability_mean,omitempty"`
	UVIndexMax               []*float64 `json:"uv_index_max,omitempty"`
}

const (
	defaultPrecipitationProbability = 50.0
	defaultUVIndex                  = 7.0
)

// ProbabilityAt returns the precipitation probability for day i, or 50 when
// that entry is missing.
func (d DailySeries) ProbabilityAt(i int) float64 {
	return valueOr(d.PrecipitationProbability, i, defaultPrecipitationProbability)
}

// UVIndexAt returns the max UV index for day i, or 7 when that entry is missing.
func (d DailySeries) UVIndexAt(i int) float64 {
	return valueOr(d.UVIndexMax, i, defaultUVIndex)
}

// Empty reports whether there is no temperature data at all.
func (d DailySeries) Empty() bool {
	return len(d.MaxTemperatureC) == 0
}

// HourlySeries holds hour-indexed samples. Any sample may lack any field.
type HourlySeries struct {
	Time                []string   `json:"time"`
	TemperatureC        []*float64 `json:"temperature_2m,omitempty"`
	PrecipitationMm     []*float64 `json:"precipitation,omitempty"`
	CloudCoverPct       []*float64 `json:"cloudcover,omitempty"`
	RelativeHumidityPct []*float64 `json:"relativehumidity_2m,omitempty"`
}

// Forecast is the pair of observation series fetched for one destination and
// trip window.
type Forecast struct {
	Provider  string        `json:"provider"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Daily     DailySeries   `json:"daily"`
	Hourly    *HourlySeries `json:"hourly,omitempty"`
}

// Preference is one of the independent trip preference flags.
type Preference string

const (
	PreferenceSun    Preference = "sun"
	PreferenceParty  Preference = "party"
	PreferenceDiving Preference = "diving"
	PreferenceSurf   Preference = "surf"
	PreferenceChill  Preference = "chill"
)

// Preferences is the caller's set of trip preference flags.
type Preferences struct {
	Sun    bool `json:"sun"`
	Party  bool `json:"party"`
	Diving bool `json:"diving"`
	Surf   bool `json:"surf"`
	Chill  bool `json:"chill"`
}

// Active returns the preferences that are switched on, in a fixed order.
func (p Preferences) Active() []Preference {
	var out []Preference
	if p.Sun {
		out = append(out, PreferenceSun)
	}
	if p.Party {
		out = append(out, PreferenceParty)
	}
	if p.Diving {
		out = append(out, PreferenceDiving)
	}
	if p.Surf {
		out = append(out, PreferenceSurf)
	}
	if p.Chill {
		out = append(out, PreferenceChill)
	}
	return out
}

// ParsePreferences reads a comma separated list such as "sun,surf".
// Unknown names are returned in the second value.
func ParsePreferences(s string) (Preferences, []string) {
	var (
		p       Preferences
		unknown []string
	)
	for _, raw := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch Preference(name) {
		case "":
		case PreferenceSun:
			p.Sun = true
		case PreferenceParty:
			p.Party = true
		case PreferenceDiving:
			p.Diving = true
		case PreferenceSurf:
			p.Surf = true
		case PreferenceChill:
			p.Chill = true
		default:
			unknown = append(unknown, raw)
		}
	}
	return p, unknown
}

// BasePriority is the top-level scoring mode.
type BasePriority string

const (
	PriorityWeather BasePriority = "weather"
	PrioritySun     BasePriority = "sun"
)

// Valid reports whether p is one of the known priorities.
func (p BasePriority) Valid() bool {
	return p == PriorityWeather || p == PrioritySun
}

// ScoreResult is the outcome of scoring one destination.
type ScoreResult struct {
	WeatherScore    float64 `json:"weatherScore"`
	PreferenceScore float64 `json:"preferenceScore"`
	TotalScore      float64 `json:"totalScore"`
	MatchPercent    int     `json:"matchPercent"`
}

// Classification is a canned narrative describing a trip window's weather.
type Classification struct {
	Label   string `json:"label"`
	Emoji   string `json:"emoji"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DayRecord is the lossy per-day projection used to compare destinations.
type DayRecord struct {
	Date            string  `json:"date"`
	TemperatureC    float64 `json:"temperatureC"`
	PrecipitationMm float64 `json:"precipitationMm"`
	Icon            Icon    `json:"icon"`
}

func valueOr(vals []*float64, i int, def float64) float64 {
	if i < 0 || i >= len(vals) || vals[i] == nil {
		return def
	}
	return *vals[i]
}

// datePart returns the YYYY-MM-DD prefix of an ISO-like timestamp.
func datePart(ts string) string {
	d, _, _ := strings.Cut(ts, "T")
	return d
}

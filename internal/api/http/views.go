package httpapi

import (
	"time"

	"github.com/pinoyinvestor/travelhunter/internal/catalog"
	"github.com/pinoyinvestor/travelhunter/internal/geo"
	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

type rankedView struct {
	Rank        int                    `json:"rank"`
	Destination weather.Destination    `json:"destination"`
	Score       weather.ScoreResult    `json:"score"`
	Analysis    weather.Classification `json:"analysis"`
	AvgCloudPct *float64               `json:"avgCloudPct,omitempty"`
	TopPick     bool                   `json:"topPick"`
	StrongMatch bool                   `json:"strongMatch"`
	Provider    string                 `json:"provider"`
	Outlook     []weather.DayOutlook   `json:"outlook"`
	Period      weather.PeriodStats    `json:"period"`
	Links       catalog.TravelLinks    `json:"links"`
	Hotel       string                 `json:"hotel,omitempty"`
	DistanceKm  *float64               `json:"distanceKm,omitempty"`
}

type rankingView struct {
	ID          string               `json:"id"`
	CreatedAt   time.Time            `json:"createdAt"`
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	Days        int                  `json:"days"`
	Preferences []weather.Preference `json:"preferences"`
	Priority    weather.BasePriority `json:"priority"`
	Origin      *geo.Origin          `json:"origin,omitempty"`
	Results     []rankedView         `json:"results"`
}

func newRankingView(r weather.Ranking, origin *geo.Origin) rankingView {
	start, _ := time.Parse(weather.DateLayout, r.StartDate)

	originIATA := ""
	if origin != nil {
		originIATA = origin.IATA
	}

	results := make([]rankedView, 0, len(r.Results))
	for _, res := range r.Results {
		v := rankedView{
			Rank:        res.Rank,
			Destination: res.Destination,
			Score:       res.Score,
			Analysis:    res.Analysis,
			AvgCloudPct: res.AvgCloudPct,
			TopPick:     res.TopPick,
			StrongMatch: res.StrongMatch,
			Provider:    res.Forecast.Provider,
			Outlook:     weather.DayOutlooks(res.Forecast, r.Days),
			Period:      weather.AggregatePeriod(res.Forecast, r.Days),
			Links:       catalog.Links(res.Destination, originIATA, start, r.Days),
			Hotel:       catalog.HotelLine(res.Destination.HotelBudget),
		}
		if origin != nil {
			km := geo.DistanceKm(*origin, res.Destination.Lat, res.Destination.Lon)
			v.DistanceKm = &km
		}
		results = append(results, v)
	}

	return rankingView{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Days:        r.Days,
		Preferences: r.Preferences.Active(),
		Priority:    r.Priority,
		Origin:      origin,
		Results:     results,
	}
}

type followView struct {
	weather.Destination
	Followed bool `json:"followed"`
}

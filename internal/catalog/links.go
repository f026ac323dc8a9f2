package catalog

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

const country = "Philippines"

// TravelLinks are outbound search links for planning a visit.
type TravelLinks struct {
	Flights    string `json:"flights,omitempty"`
	Airbnb     string `json:"airbnb,omitempty"`
	Maps       string `json:"maps"`
	ThingsToDo string `json:"thingsToDo"`
}

// Links builds the search links for dest. Flights need both IATA codes and
// a start date; lodging needs a start date.
func Links(dest weather.Destination, originIATA string, start time.Time, days int) TravelLinks {
	var l TravelLinks

	if originIATA != "" && dest.IATACode != "" && !start.IsZero() {
		q := fmt.Sprintf("Flights from %s to %s on %s", originIATA, dest.IATACode, start.Format(weather.DateLayout))
		l.Flights = "https://www.google.com/travel/flights?q=" + url.PathEscape(q)
	}

	if !start.IsZero() && days > 0 {
		checkout := start.AddDate(0, 0, max(days, 1)-1)
		v := url.Values{}
		v.Set("checkin", start.Format(weather.DateLayout))
		v.Set("checkout", checkout.Format(weather.DateLayout))
		v.Set("adults", "2")
		l.Airbnb = fmt.Sprintf("https://www.airbnb.com/s/%s/homes?%s",
			url.PathEscape(dest.Name+" "+country), v.Encode())
	}

	l.ThingsToDo = "https://www.google.com/search?q=" + url.QueryEscape(dest.Name+" "+country+" things to do")

	if dest.Lat != 0 || dest.Lon != 0 {
		l.Maps = fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%g,%g", dest.Lat, dest.Lon)
	} else {
		l.Maps = "https://www.google.com/maps/search/" + url.PathEscape(dest.Name+" "+country)
	}
	return l
}

// HotelLine renders the nightly lodging estimate.
func HotelLine(b *weather.HotelBudget) string {
	switch {
	case b == nil:
		return ""
	case b.Low != nil && b.Mid != nil:
		return fmt.Sprintf("%d-%d kr/natt", *b.Low, *b.Mid)
	case b.Mid != nil:
		return fmt.Sprintf("%d kr/natt", *b.Mid)
	default:
		return "varierar"
	}
}

// Package catalog holds the static destination dataset and the travel links
// derived from it.
package catalog

import "github.com/pinoyinvestor/travelhunter/internal/weather"

func budget(low, mid, high int) *weather.HotelBudget {
	return &weather.HotelBudget{Low: &low, Mid: &mid, High: &high}
}

var destinations = []weather.Destination{
	{
		ID:          "siargao",
		Name:        "Siargao",
		Region:      "Mindanao",
		Tags:        []string{"Surf", "Island hopping", "Chill", "Sol"},
		Airport:     "Siargao (IAO) via Cebu/Manila",
		IATACode:    "IAO",
		Lat:         9.8482,
		Lon:         126.0458,
		Description: "Surfparadis med palmer, laguner och ö-hoppning runt General Luna och Cloud 9.",
		HotelBudget: budget(300, 800, 1800),
		Activities: []weather.Activity{
			{ID: "cloud9", Name: "Cloud 9 Surfspot", Type: "Surf", Lat: 9.8488, Lon: 126.1653, Note: "Perfekt för surfare, ikoniskt torn."},
			{ID: "sugbalagoon", Name: "Sugba Lagoon", Type: "Lagoon", Lat: 9.8456, Lon: 125.9363, Note: "Blå lagun med kajak, paddleboard och hopp."},
			{ID: "magpupungko", Name: "Magpupungko Rock Pools", Type: "Pooler", Lat: 9.8411, Lon: 125.9785, Note: "Naturliga pooler vid lågvatten."},
		},
	},
	{
		ID:          "boracay",
		Name:        "Boracay",
		Region:      "Western Visayas",
		Tags:        []string{"Strand", "Nightlife", "Familj", "Sol"},
		Airport:     "Caticlan (MPH) / Kalibo (KLO)",
		IATACode:    "MPH",
		Lat:         11.9674,
		Lon:         121.9248,
		Description: "Vita stränder, klart vatten och mycket restauranger och barer längs White Beach.",
		HotelBudget: budget(400, 1000, 2200),
		Activities: []weather.Activity{
			{ID: "whitebeach", Name: "White Beach", Type: "Strand", Lat: 11.9622, Lon: 121.9270, Note: "Huvudstranden uppdelad i Station 1-3."},
			{ID: "wilysrock", Name: "Willy's Rock", Type: "Foto", Lat: 11.9664, Lon: 121.9238, Note: "Känd ikon i vattnet."},
			{ID: "mtluho", Name: "Mount Luho Viewpoint", Type: "Utsikt", Lat: 11.9815, Lon: 121.9392, Note: "Bästa utsikten på ön."},
		},
	},
	{
		ID:          "cebu",
		Name:        "Cebu",
		Region:      "Central Visayas",
		Tags:        []string{"Stad", "Strand", "Utflykter", "Dykning"},
		Airport:     "Cebu (CEB)",
		IATACode:    "CEB",
		Lat:         10.3157,
		Lon:         123.8854,
		Description: "Mix av city och natur, med vattenfall och öar som Malapascua och Moalboal inom räckhåll.",
		HotelBudget: budget(350, 900, 2000),
		Activities: []weather.Activity{
			{ID: "kawasan", Name: "Kawasan Falls", Type: "Vattenfall", Lat: 9.8087, Lon: 123.3657, Note: "Populärt canyoneering-äventyr."},
			{ID: "sardine", Name: "Moalboal Sardine Run", Type: "Dykning", Lat: 9.9414, Lon: 123.3710, Note: "Miljontals sardiner året runt."},
		},
	},
	{
		ID:          "panglao",
		Name:        "Panglao (Bohol)",
		Region:      "Central Visayas",
		Tags:        []string{"Dykning", "Strand", "Chill"},
		Airport:     "Bohol-Panglao (TAG)",
		IATACode:    "TAG",
		Lat:         9.588,
		Lon:         123.749,
		Description: "Fina stränder och dykning. Nära Chocolate Hills och tarsiers.",
		HotelBudget: budget(350, 900, 1800),
		Activities: []weather.Activity{
			{ID: "alona", Name: "Alona Beach", Type: "Strand", Lat: 9.5518, Lon: 123.7735},
			{ID: "chocolate", Name: "Chocolate Hills", Type: "Utsikt", Lat: 9.8499, Lon: 124.1435},
		},
	},
	{
		ID:          "siquijor",
		Name:        "Siquijor",
		Region:      "Central Visayas",
		Tags:        []string{"Lugn", "Vattenfall", "Scooter"},
		Airport:     "Färja från Dumaguete (DGT)",
		IATACode:    "DGT",
		Lat:         9.2148,
		Lon:         123.515,
		Description: "Mysig ö med vattenfall, klipphopp och magiska solnedgångar.",
		HotelBudget: budget(300, 700, 1500),
		Activities: []weather.Activity{
			{ID: "cambugahay", Name: "Cambugahay Falls", Type: "Vattenfall", Lat: 9.1637, Lon: 123.5954},
			{ID: "salagdoong", Name: "Salagdoong Cliff Jump", Type: "Klipphopp", Lat: 9.2122, Lon: 123.6464},
		},
	},
	{
		ID:          "elnido",
		Name:        "El Nido",
		Region:      "Palawan",
		Tags:        []string{"Island hopping", "Snorkling", "Foto"},
		Airport:     "El Nido (ENI) / Puerto Princesa (PPS)",
		IATACode:    "ENI",
		Lat:         11.178,
		Lon:         119.391,
		Description: "Kalkstensklippor, turkost vatten och ö-hoppning bland laguner och stränder.",
		HotelBudget: budget(400, 900, 2000),
		Activities: []weather.Activity{
			{ID: "biglagoon", Name: "Big Lagoon", Type: "Lagoon", Lat: 11.1728, Lon: 119.4179},
			{ID: "smalllagoon", Name: "Small Lagoon", Type: "Lagoon", Lat: 11.1606, Lon: 119.4172},
		},
	},
	{
		ID:          "coron",
		Name:        "Coron",
		Region:      "Palawan",
		Tags:        []string{"Dykning", "Vrak", "Laguner"},
		Airport:     "Busuanga (USU)",
		IATACode:    "USU",
		Lat:         11.9994,
		Lon:         120.2044,
		Description: "Kända laguner, sjöar och vrakdykning. Perfekt för äventyr och båtturer.",
		HotelBudget: budget(400, 900, 1800),
		Activities: []weather.Activity{
			{ID: "kayangan", Name: "Kayangan Lake", Type: "Lake", Lat: 12.0028, Lon: 120.2240},
			{ID: "twinlagoon", Name: "Twin Lagoon", Type: "Lagoon", Lat: 12.0165, Lon: 120.2236},
		},
	},
	{
		ID:          "puertoprincesa",
		Name:        "Puerto Princesa",
		Region:      "Palawan",
		Tags:        []string{"Utflykter", "Underground River"},
		Airport:     "Puerto Princesa (PPS)",
		IATACode:    "PPS",
		Lat:         9.7392,
		Lon:         118.7353,
		Description: "Bra bas på Palawan med utflykter och den berömda underjordiska floden.",
		HotelBudget: budget(350, 850, 1600),
		Activities: []weather.Activity{
			{ID: "underground", Name: "Underground River", Type: "Natur", Lat: 10.1937, Lon: 118.9269},
		},
	},
	{
		ID:          "launion",
		Name:        "La Union",
		Region:      "Luzon",
		Tags:        []string{"Surf", "Weekend", "Från Manila"},
		Airport:     "Landväg från Manila (ca 4-6 h)",
		IATACode:    "MNL",
		Lat:         16.6159,
		Lon:         120.3199,
		Description: "Populär surf- och weekenddestination för locals och turister från Manila.",
		HotelBudget: budget(300, 800, 1500),
		Activities: []weather.Activity{
			{ID: "sanjuan", Name: "San Juan Surf Beach", Type: "Surf", Lat: 16.6694, Lon: 120.3190},
		},
	},
	{
		ID:          "baguio",
		Name:        "Baguio",
		Region:      "Luzon",
		Tags:        []string{"Svalare klimat", "Stad", "Weekend"},
		Airport:     "Landväg från Manila (ca 4-6 h)",
		IATACode:    "MNL",
		Lat:         16.4023,
		Lon:         120.596,
		Description: "Svalare bergsklimat, perfekt för att komma undan värmen.",
		HotelBudget: budget(300, 700, 1200),
		Activities: []weather.Activity{
			{ID: "burnham", Name: "Burnham Park", Type: "Park", Lat: 16.4116, Lon: 120.5942},
			{ID: "minesview", Name: "Mines View Park", Type: "Utsikt", Lat: 16.4222, Lon: 120.6270},
		},
	},
}

// All returns a copy of the catalog in its canonical order.
func All() []weather.Destination {
	out := make([]weather.Destination, len(destinations))
	copy(out, destinations)
	return out
}

// ByID looks up one destination.
func ByID(id string) (weather.Destination, bool) {
	for _, d := range destinations {
		if d.ID == id {
			return d, true
		}
	}
	return weather.Destination{}, false
}

// ByIDs returns the known destinations among ids, in catalog order.
func ByIDs(ids []string) []weather.Destination {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []weather.Destination
	for _, d := range destinations {
		if _, ok := want[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

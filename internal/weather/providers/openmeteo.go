package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

const (
	openMeteoDaily  = "temperature_2m_max,precipitation_sum,windspeed_10m_max,precipitation_probability_mean,uv_index_max"
	openMeteoHourly = "temperature_2m,precipitation,cloudcover,relativehumidity_2m"
)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, logger *slog.Logger) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client, logger),
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	Timezone string `json:"timezone"`
	Daily    *struct {
		Time                     []string   `json:"time"`
		TemperatureMax           []*float64 `json:"temperature_2m_max"`
		PrecipitationSum         []*float64 `json:"precipitation_sum"`
		WindspeedMax             []*float64 `json:"windspeed_10m_max"`
		PrecipitationProbability []*float64 `json:"precipitation_probability_mean"`
		UVIndexMax               []*float64 `json:"uv_index_max"`
	} `json:"daily"`
	Hourly *struct {
		Time             []string   `json:"time"`
		Temperature      []*float64 `json:"temperature_2m"`
		Precipitation    []*float64 `json:"precipitation"`
		CloudCover       []*float64 `json:"cloudcover"`
		RelativeHumidity []*float64 `json:"relativehumidity_2m"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, req weather.ForecastRequest) (weather.Forecast, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(req.Destination.Lat, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(req.Destination.Lon, 'f', 4, 64))
		values.Set("daily", openMeteoDaily)
		values.Set("hourly", openMeteoHourly)
		values.Set("start_date", req.StartDate.Format(weather.DateLayout))
		values.Set("end_date", req.EndDate.Format(weather.DateLayout))
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("decoding openmeteo response: %w", err)
	}

	f := weather.Forecast{
		Provider:  p.name,
		FetchedAt: time.Now().UTC(),
	}
	if payload.Daily != nil {
		f.Daily = weather.DailySeries{
			Time:                     payload.Daily.Time,
			MaxTemperatureC:          requiredPrefix(payload.Daily.TemperatureMax),
			PrecipitationMm:          requiredPrefix(payload.Daily.PrecipitationSum),
			MaxWindSpeedKmh:          requiredPrefix(payload.Daily.WindspeedMax),
			PrecipitationProbability: payload.Daily.PrecipitationProbability,
			UVIndexMax:               payload.Daily.UVIndexMax,
		}
	}
	if payload.Hourly != nil {
		f.Hourly = &weather.HourlySeries{
			Time:                payload.Hourly.Time,
			TemperatureC:        payload.Hourly.Temperature,
			PrecipitationMm:     payload.Hourly.Precipitation,
			CloudCoverPct:       payload.Hourly.CloudCover,
			RelativeHumidityPct: payload.Hourly.RelativeHumidity,
		}
	}
	return f, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// weatherAPIMaxDays is the furthest WeatherAPI.com forecasts ahead.
const weatherAPIMaxDays = 14

// WeatherAPIProvider implements weather.ForecastProvider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, logger *slog.Logger) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: defaultHTTPConfig(client, logger),
		circuit: newBreaker("weatherapi"),
		now:     time.Now,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64  `json:"maxtemp_c"`
				TotalPrecipMm     float64  `json:"totalprecip_mm"`
				MaxWindKph        float64  `json:"maxwind_kph"`
				DailyChanceOfRain *float64 `json:"daily_chance_of_rain"`
				UV                *float64 `json:"uv"`
			} `json:"day"`
			Hour []struct {
				Time     string   `json:"time"`
				TempC    *float64 `json:"temp_c"`
				PrecipMm *float64 `json:"precip_mm"`
				Cloud    *float64 `json:"cloud"`
				Humidity *float64 `json:"humidity"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, req weather.ForecastRequest) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("weatherapi: %w", errMissingAPIKey)
	}

	today := p.now().UTC().Truncate(24 * time.Hour)
	ahead := int(req.EndDate.Sub(today).Hours()/24) + 1
	if ahead < 1 || ahead > weatherAPIMaxDays {
		return weather.Forecast{}, fmt.Errorf("weatherapi: window ends %d days ahead, outside 1-%d", ahead, weatherAPIMaxDays)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
		values.Set("q", fmt.Sprintf("%f,%f", req.Destination.Lat, req.Destination.Lon))
		values.Set("days", strconv.Itoa(ahead))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("decoding weatherapi response: %w", err)
	}

	first := req.StartDate.Format(weather.DateLayout)
	last := req.EndDate.Format(weather.DateLayout)

	var daily weather.DailySeries
	hourly := &weather.HourlySeries{}
	for _, fd := range payload.Forecast.ForecastDay {
		if fd.Date < first || fd.Date > last {
			continue
		}
		daily.Time = append(daily.Time, fd.Date)
		daily.MaxTemperatureC = append(daily.MaxTemperatureC, fd.Day.MaxTempC)
		daily.PrecipitationMm = append(daily.PrecipitationMm, fd.Day.TotalPrecipMm)
		daily.MaxWindSpeedKmh = append(daily.MaxWindSpeedKmh, fd.Day.MaxWindKph)
		daily.PrecipitationProbability = append(daily.PrecipitationProbability, fd.Day.DailyChanceOfRain)
		daily.UVIndexMax = append(daily.UVIndexMax, fd.Day.UV)

		for _, h := range fd.Hour {
			// "2025-01-10 15:00" -> "2025-01-10T15:00"
			hourly.Time = append(hourly.Time, strings.Replace(h.Time, " ", "T", 1))
			hourly.TemperatureC = append(hourly.TemperatureC, h.TempC)
			hourly.PrecipitationMm = append(hourly.PrecipitationMm, h.PrecipMm)
			hourly.CloudCoverPct = append(hourly.CloudCoverPct, h.Cloud)
			hourly.RelativeHumidityPct = append(hourly.RelativeHumidityPct, h.Humidity)
		}
	}

	f := weather.Forecast{
		Provider:  p.name,
		FetchedAt: time.Now().UTC(),
		Daily:     daily,
	}
	if len(hourly.Time) > 0 {
		f.Hourly = hourly
	}
	return f, nil
}

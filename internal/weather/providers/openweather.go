package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// OpenWeatherProvider implements weather.ForecastProvider for the OpenWeatherMap One Call API.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, logger *slog.Logger) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		httpCfg: defaultHTTPConfig(client, logger),
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherResponse struct {
	TimezoneOffset int64 `json:"timezone_offset"`
	Daily          []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Max float64 `json:"max"`
		} `json:"temp"`
		Rain      float64  `json:"rain"`
		WindSpeed float64  `json:"wind_speed"`
		Pop       *float64 `json:"pop"`
		UVI       *float64 `json:"uvi"`
	} `json:"daily"`
	Hourly []struct {
		Dt       int64    `json:"dt"`
		Temp     *float64 `json:"temp"`
		Clouds   *float64 `json:"clouds"`
		Humidity *float64 `json:"humidity"`
		Rain     *struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
	} `json:"hourly"`
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, req weather.ForecastRequest) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", req.Destination.Lat))
		values.Set("lon", fmt.Sprintf("%f", req.Destination.Lon))
		values.Set("exclude", "current,minutely,alerts")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("decoding openweather response: %w", err)
	}

	first := req.StartDate.Format(weather.DateLayout)
	last := req.EndDate.Format(weather.DateLayout)
	local := func(dt int64) time.Time {
		return time.Unix(dt+payload.TimezoneOffset, 0).UTC()
	}

	var daily weather.DailySeries
	for _, d := range payload.Daily {
		date := local(d.Dt).Format(weather.DateLayout)
		if date < first || date > last {
			continue
		}
		daily.Time = append(daily.Time, date)
		daily.MaxTemperatureC = append(daily.MaxTemperatureC, d.Temp.Max)
		daily.PrecipitationMm = append(daily.PrecipitationMm, d.Rain)
		// Wind comes in m/s with metric units.
		daily.MaxWindSpeedKmh = append(daily.MaxWindSpeedKmh, d.WindSpeed*3.6)
		var prob *float64
		if d.Pop != nil {
			prob = floatPtr(*d.Pop * 100)
		}
		daily.PrecipitationProbability = append(daily.PrecipitationProbability, prob)
		daily.UVIndexMax = append(daily.UVIndexMax, d.UVI)
	}

	hourly := &weather.HourlySeries{}
	for _, h := range payload.Hourly {
		ts := local(h.Dt)
		date := ts.Format(weather.DateLayout)
		if date < first || date > last {
			continue
		}
		var rain *float64
		if h.Rain != nil {
			rain = floatPtr(h.Rain.OneH)
		} else {
			rain = floatPtr(0)
		}
		hourly.Time = append(hourly.Time, ts.Format("2006-01-02T15:04"))
		hourly.TemperatureC = append(hourly.TemperatureC, h.Temp)
		hourly.PrecipitationMm = append(hourly.PrecipitationMm, rain)
		hourly.CloudCoverPct = append(hourly.CloudCoverPct, h.Clouds)
		hourly.RelativeHumidityPct = append(hourly.RelativeHumidityPct, h.Humidity)
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

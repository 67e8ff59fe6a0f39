package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/school-board/internal/fetch"
	"github.com/i474232898/school-board/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	lang    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey, lang string, cb *gobreaker.CircuitBreaker) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		lang:    lang,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		client:  client,
		circuit: cb,
	}
}

func (p *WeatherAPIProvider) WithBaseURL(u string) *WeatherAPIProvider {
	if u != "" {
		p.baseURL = u
	}
	return p
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Current(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	if p.lang != "" {
		values.Set("lang", p.lang)
	}
	// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
	if loc.Lat != nil && loc.Lon != nil {
		values.Set("q", fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lon))
	} else {
		values.Set("q", loc.Query())
	}

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current struct {
			TempC float64 `json:"temp_c"`
		} `json:"current"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := fetch.GetJSON(ctx, p.client, p.circuit, u, &payload); err != nil {
		return weather.Snapshot{}, err
	}

	return checkSnapshot(p.name, weather.Snapshot{
		Name: payload.Location.Name,
		Main: weather.Main{Temp: payload.Current.TempC},
	})
}

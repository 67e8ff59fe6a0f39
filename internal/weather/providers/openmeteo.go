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

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo needs no key but only accepts coordinates, and it does not echo a
// place name, so the configured city is used as the snapshot name.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, cb *gobreaker.CircuitBreaker) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		circuit: cb,
	}
}

func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	if u != "" {
		p.baseURL = u
	}
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Current(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if loc.Lat == nil || loc.Lon == nil {
		return weather.Snapshot{}, fmt.Errorf("openmeteo requires latitude and longitude")
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", *loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", *loc.Lon))
	values.Set("current_weather", "true")

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
		} `json:"current_weather"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := fetch.GetJSON(ctx, p.client, p.circuit, u, &payload); err != nil {
		return weather.Snapshot{}, err
	}

	return checkSnapshot(p.name, weather.Snapshot{
		Name: loc.City,
		Main: weather.Main{Temp: payload.CurrentWeather.Temperature},
	})
}

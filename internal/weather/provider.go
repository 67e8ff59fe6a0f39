package weather

import "context"

// Provider abstracts a current-weather source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (Snapshot, error)
}

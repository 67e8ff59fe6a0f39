package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/school-board/internal/weather"
)

const (
	ProviderOpenWeather = "openweather"
	ProviderWeatherAPI  = "weatherapi"
	ProviderOpenMeteo   = "openmeteo"

	DefaultSchoolAPIBaseURL = "https://li7scheduleapi-production.up.railway.app/api/"
)

var validate = validator.New()

type AppConfig struct {
	SchoolAPIBaseURL string `validate:"required,url"`

	WeatherProvider   string `validate:"oneof=openweather weatherapi openmeteo"`
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	WeatherLang       string

	// Location to show weather for.
	Location weather.Location

	HTTPTimeout time.Duration `validate:"gt=0"`

	// Board timings.
	RotationInterval time.Duration `validate:"gt=0"`
	FadeDelay        time.Duration `validate:"gt=0,ltfield=RotationInterval"`
	ClockInterval    time.Duration `validate:"gt=0"`
	RefreshInterval  time.Duration `validate:"gte=0"` // 0 disables

	BreakerMaxFailures int `validate:"gte=1"`

	Timezone *time.Location `validate:"-"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.SchoolAPIBaseURL = getenvDefault("SCHOOL_API_BASE_URL", DefaultSchoolAPIBaseURL)

	cfg.WeatherProvider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", ProviderOpenWeather))
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherLang = getenvDefault("WEATHER_LANG", "ru")

	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"ROTATION_INTERVAL", "10s", &cfg.RotationInterval},
		{"FADE_DELAY", "1s", &cfg.FadeDelay},
		{"CLOCK_INTERVAL", "1s", &cfg.ClockInterval},
		{"REFRESH_INTERVAL", "15m", &cfg.RefreshInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	cfg.BreakerMaxFailures = getenvInt("BREAKER_MAX_FAILURES", 5)

	tz, err := time.LoadLocation(getenvDefault("BOARD_TIMEZONE", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.WeatherProvider == ProviderOpenMeteo && (cfg.Location.Lat == nil || cfg.Location.Lon == nil) {
		return nil, fmt.Errorf("openmeteo requires WEATHER_LOCATION_LAT and WEATHER_LOCATION_LON")
	}

	return cfg, nil
}

func loadLocation() (weather.Location, error) {
	loc := weather.Location{
		City:    strings.TrimSpace(getenvDefault("WEATHER_LOCATION_CITY", "Kazan")),
		Country: strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY")),
	}
	if loc.City == "" {
		return loc, fmt.Errorf("WEATHER_LOCATION_CITY must not be empty")
	}

	lat, err := getenvFloat("WEATHER_LOCATION_LAT")
	if err != nil {
		return loc, err
	}
	lon, err := getenvFloat("WEATHER_LOCATION_LON")
	if err != nil {
		return loc, err
	}
	if (lat == nil) != (lon == nil) {
		return loc, fmt.Errorf("WEATHER_LOCATION_LAT and WEATHER_LOCATION_LON must be set together")
	}
	loc.Lat, loc.Lon = lat, lon

	return loc, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}

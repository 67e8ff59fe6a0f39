package weather

import "strconv"

// Location is the place the board shows weather for.
// City must be provided; Lat/Lon are only needed by coordinate-based providers.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Query returns the "city,country" form accepted by name-based providers.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Snapshot is the current weather as shown on the board.
// It mirrors the OpenWeatherMap current-weather payload.
type Snapshot struct {
	Name string `json:"name" validate:"required"`
	Main Main   `json:"main"`
}

// Main holds the measured values of a Snapshot.
type Main struct {
	Temp float64 `json:"temp"` // °C
}

// TempString formats the temperature in its shortest decimal form followed by °C.
func (s Snapshot) TempString() string {
	return strconv.FormatFloat(s.Main.Temp, 'f', -1, 64) + "°C"
}

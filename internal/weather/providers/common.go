package providers

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/school-board/internal/weather"
)

var validate = validator.New()

// checkSnapshot rejects payloads that decoded but lack the fields the board shows.
func checkSnapshot(provider string, snap weather.Snapshot) (weather.Snapshot, error) {
	if err := validate.Struct(snap); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%s returned an incomplete payload: %w", provider, err)
	}
	return snap, nil
}

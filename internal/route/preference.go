package route

import (
	"errors"
	"fmt"
)

var ErrInvalidPreference = errors.New("invalid route preference")

const (
	WeatherSunny  = "sunny"
	WeatherCloudy = "cloudy"
	WeatherRainy  = "rainy"

	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// Preference weighs safety, eco-friendliness and travel time on a 1-10
// scale. Weather and TimeOfDay are optional modifiers.
type Preference struct {
	Safety    float64 `json:"safety"`
	Eco       float64 `json:"eco"`
	Time      float64 `json:"time"`
	Weather   string  `json:"weather,omitempty"`
	TimeOfDay string  `json:"timeOfDay,omitempty"`
}

func DefaultPreference() Preference {
	return Preference{Safety: 5, Eco: 5, Time: 5}
}

func (p Preference) Validate() error {
	for name, w := range map[string]float64{"safety": p.Safety, "eco": p.Eco, "time": p.Time} {
		if w < 1 || w > 10 {
			return fmt.Errorf("%w: %s weight %v outside 1-10", ErrInvalidPreference, name, w)
		}
	}
	switch p.Weather {
	case "", WeatherSunny, WeatherCloudy, WeatherRainy:
	default:
		return fmt.Errorf("%w: weather %q", ErrInvalidPreference, p.Weather)
	}
	switch p.TimeOfDay {
	case "", Morning, Afternoon, Evening, Night:
	default:
		return fmt.Errorf("%w: time of day %q", ErrInvalidPreference, p.TimeOfDay)
	}
	return nil
}

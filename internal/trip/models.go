package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backend-greentransit/internal/emission"
)

// DefaultHistoryLimit bounds the persisted travel history.
const DefaultHistoryLimit = 50

// MaxDistanceKm is the longest single trip accepted.
const MaxDistanceKm = 1000

var ErrInvalidTrip = errors.New("invalid trip")

type TravelRecord struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Mode        emission.Mode `json:"mode"`
	Distance    float64       `json:"distance"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	CarbonSaved float64       `json:"carbonSaved"`
	Points      int           `json:"points"`
	RouteTag    string        `json:"routeTag,omitempty"`
	Weather     string        `json:"weather,omitempty"`
}

// Input is what a client submits to log a trip. At defaults to now.
type Input struct {
	Mode       emission.Mode `json:"mode"`
	DistanceKm float64       `json:"distance"`
	Start      string        `json:"start"`
	End        string        `json:"end"`
	RouteTag   string        `json:"routeTag,omitempty"`
	Weather    string        `json:"weather,omitempty"`
	At         time.Time     `json:"date,omitempty"`
}

func (in Input) Validate() error {
	if strings.TrimSpace(in.Start) == "" || strings.TrimSpace(in.End) == "" {
		return fmt.Errorf("%w: start and end required", ErrInvalidTrip)
	}
	if !(in.DistanceKm > 0) {
		return fmt.Errorf("%w: distance must be positive", ErrInvalidTrip)
	}
	if in.DistanceKm > MaxDistanceKm {
		return fmt.Errorf("%w: distance exceeds %g km", ErrInvalidTrip, float64(MaxDistanceKm))
	}
	return nil
}

// Normalize trims labels and lower-cases the mode and tags.
func (in Input) Normalize() Input {
	in.Mode = emission.ParseMode(string(in.Mode))
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
	in.RouteTag = strings.TrimSpace(in.RouteTag)
	in.Weather = strings.ToLower(strings.TrimSpace(in.Weather))
	return in
}

// Labels returns the start and end labels of the record.
func (r TravelRecord) Labels() [2]string {
	return [2]string{r.Start, r.End}
}

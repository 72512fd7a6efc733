package route

import (
	"math"
	"sort"

	"backend-greentransit/internal/campus"
	"backend-greentransit/internal/emission"
)

const (
	rainyWalkPenalty   = -3.0
	nightUnsafePenalty = -2.0
	nightSafetyFloor   = 7.0
)

// Breakdown is the per-factor contribution to a route score.
type Breakdown struct {
	Safety    float64 `json:"safety"`
	Eco       float64 `json:"eco"`
	Time      float64 `json:"time"`
	Weather   float64 `json:"weather"`
	TimeOfDay float64 `json:"timeOfDay"`
}

func (b Breakdown) Total() float64 {
	return b.Safety + b.Eco + b.Time + b.Weather + b.TimeOfDay
}

type Scored struct {
	Route       campus.Route        `json:"route"`
	Score       float64             `json:"score"`
	Breakdown   Breakdown           `json:"breakdown"`
	DangerZones []campus.DangerZone `json:"dangerZones"`
}

func ecoScore(m emission.Mode) float64 {
	switch m {
	case emission.Walking:
		return 10
	case emission.Cycling:
		return 8
	case emission.Bus:
		return 6
	default:
		return 4
	}
}

// Score rates a single candidate under p.
func Score(r campus.Route, p Preference) Breakdown {
	b := Breakdown{
		Safety: r.SafetyIndex * (p.Safety / 10),
		Eco:    ecoScore(r.Type) * (p.Eco / 10),
		Time:   (10 - math.Min(9, r.EstimatedTime/10)) * (p.Time / 10),
	}
	if p.Weather == WeatherRainy && r.Type == emission.Walking {
		b.Weather = rainyWalkPenalty
	}
	if p.TimeOfDay == Night && r.SafetyIndex < nightSafetyFloor {
		b.TimeOfDay = nightUnsafePenalty
	}
	return b
}

// Candidates returns every catalog route from start to end. When there is
// none, each route from end to start is offered reversed.
func Candidates(c *campus.Catalog, start, end string) []campus.Route {
	if direct := c.Between(start, end); len(direct) > 0 {
		return direct
	}
	reverse := c.Between(end, start)
	out := make([]campus.Route, 0, len(reverse))
	for _, r := range reverse {
		out = append(out, r.Reversed())
	}
	return out
}

// Rank scores all candidates, best first. Equal scores keep catalog order.
func Rank(c *campus.Catalog, start, end string, p Preference) []Scored {
	candidates := Candidates(c, start, end)
	out := make([]Scored, 0, len(candidates))
	for _, r := range candidates {
		b := Score(r, p)
		out = append(out, Scored{
			Route:       r,
			Score:       b.Total(),
			Breakdown:   b,
			DangerZones: c.ZonesAlong(r.Path),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Recommend returns the best route between start and end. The bool is false
// when the catalog has no route in either direction.
func Recommend(c *campus.Catalog, start, end string, p Preference) (campus.Route, bool) {
	ranked := Rank(c, start, end, p)
	if len(ranked) == 0 {
		return campus.Route{}, false
	}
	return ranked[0].Route, true
}

package achievement

import (
	"math"

	"backend-greentransit/internal/emission"
	"backend-greentransit/internal/trip"
)

type State struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Progress float64 `json:"progress"`
	Unlocked bool    `json:"unlocked"`
}

// Metrics are the profile totals the catalog is measured against.
type Metrics struct {
	TotalCarbonSaved float64
	StreakDays       int
	TotalPoints      int
}

type Result struct {
	States        []State
	NewlyUnlocked []int
}

// Celebrate is true when this pass unlocked at least one achievement.
func (r Result) Celebrate() bool {
	return len(r.NewlyUnlocked) > 0
}

// Defaults returns the locked, zero-progress state for every definition.
func Defaults() []State {
	states := make([]State, 0, len(catalog))
	for _, d := range catalog {
		states = append(states, State{ID: d.ID, Title: d.Title})
	}
	return states
}

// Evaluate recomputes every achievement from the totals and history. An
// achievement unlocked in prev stays unlocked whatever the new ratio.
func Evaluate(prev []State, m Metrics, history []trip.TravelRecord) Result {
	wasUnlocked := make(map[int]bool, len(prev))
	for _, s := range prev {
		if s.Unlocked {
			wasUnlocked[s.ID] = true
		}
	}

	safe, zero := 0, 0
	for _, r := range history {
		if safeCorridor.MatchedBy(r.Start) || safeCorridor.MatchedBy(r.End) {
			safe++
		}
		if r.Mode == emission.Walking || r.Mode == emission.Cycling {
			zero++
		}
	}

	raw := map[int]float64{
		FirstKilogram:  m.TotalCarbonSaved / carbonTargetKg,
		GreenPioneer:   float64(m.StreakDays) / streakTargetDays,
		SafeCorridor:   float64(safe) / safeTripsTarget,
		ZeroCarbon:     float64(zero) / zeroTripsTarget,
		PointsMaster:   float64(m.TotalPoints) / pointsTarget,
		CampusExplorer: float64(VisitedLandmarks(history)) / float64(len(campusLandmarks)),
	}

	res := Result{States: make([]State, 0, len(catalog))}
	for _, d := range catalog {
		progress := percent(raw[d.ID])
		unlocked := progress >= 100
		if wasUnlocked[d.ID] {
			unlocked = true
			progress = 100
		} else if unlocked {
			res.NewlyUnlocked = append(res.NewlyUnlocked, d.ID)
		}
		res.States = append(res.States, State{ID: d.ID, Title: d.Title, Progress: progress, Unlocked: unlocked})
	}
	return res
}

// VisitedLandmarks counts the distinct campus landmarks named in history.
func VisitedLandmarks(history []trip.TravelRecord) int {
	visited := make(map[string]struct{}, len(campusLandmarks))
	for _, r := range history {
		for _, l := range campusLandmarks {
			if l.MatchedBy(r.Start) || l.MatchedBy(r.End) {
				visited[l.ID] = struct{}{}
			}
		}
	}
	return len(visited)
}

func percent(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio < 0 {
		return 0
	}
	return math.Min(ratio, 1) * 100
}

package task

import (
	"context"
	"math"

	"backend-greentransit/internal/emission"
)

// Snapshot is the profile view a task is measured against.
type Snapshot struct {
	TotalCarbonSaved float64
	StreakDays       int
	VisitedLandmarks int
}

// Event describes the trip that triggered an evaluation.
type Event struct {
	Mode     emission.Mode
	RouteTag string
	Weather  string
}

// Evaluate updates every open task against the trip event and profile
// snapshot. Tasks transitioning to completed contribute their reward to the
// returned batch; applying it to the profile is left to the caller.
func Evaluate(ctx context.Context, tasks []Task, snap Snapshot, ev Event) ([]Task, Rewards) {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	rewards := Rewards{Badges: []string{}, Completed: []int{}}

	for i, t := range out {
		if t.Completed {
			continue
		}
		progress, satisfied := measure(t, snap, ev)
		out[i].Progress = progress
		if !satisfied {
			continue
		}
		done := complete(ctx, t, func() {
			rewards.Points += t.Reward.Points
			if t.Reward.Badge != "" {
				rewards.Badges = append(rewards.Badges, t.Reward.Badge)
			}
			rewards.Completed = append(rewards.Completed, t.ID)
		})
		out[i].Completed = done
		if done {
			out[i].Progress = 100
		}
	}
	return out, rewards
}

func measure(t Task, snap Snapshot, ev Event) (float64, bool) {
	req := t.Requirement
	switch req.Type {
	case TravelCount:
		var ok bool
		switch req.Mode {
		case ModeGreen:
			ok = ev.Mode.Green()
		case ModeRainyGreen:
			ok = ev.Mode.Green() && ev.Weather == "rainy"
		case ModeExploration:
			p := ratio(float64(snap.VisitedLandmarks), req.Value)
			return p, p >= 100
		default:
			ok = string(ev.Mode) == req.Mode
		}
		if ok {
			return 100, true
		}
		return t.Progress, false
	case CarbonSaved:
		p := ratio(snap.TotalCarbonSaved, req.Value)
		return p, p >= 100
	case Streak:
		p := ratio(float64(snap.StreakDays), req.Value)
		return p, p >= 100
	case SpecificRoute:
		if ev.RouteTag != "" && ev.RouteTag == req.Route {
			return 100, true
		}
	}
	return t.Progress, false
}

func ratio(v, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return clamp(math.Min(v/threshold, 1) * 100)
}

func clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, 100)
}

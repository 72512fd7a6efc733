package ledger

import (
	"context"
	"fmt"

	"backend-greentransit/internal/achievement"
	"backend-greentransit/internal/emission"
	"backend-greentransit/internal/store"
	"backend-greentransit/internal/streak"
	"backend-greentransit/internal/task"
	"backend-greentransit/internal/trip"

	"go.uber.org/zap"
)

// Result is what a caller learns about a recorded trip.
type Result struct {
	PointsEarned  int               `json:"pointsEarned"`
	CarbonSaved   float64           `json:"carbonSaved"`
	StreakDays    int               `json:"streakDays"`
	NewlyUnlocked []int             `json:"newlyUnlocked"`
	Celebrate     bool              `json:"celebrate"`
	Rewards       task.Rewards      `json:"rewards"`
	Record        trip.TravelRecord `json:"record"`
}

// RecordTrip validates the trip, applies its deltas to the profile, updates
// achievements and tasks, and commits profile, history and tasks together.
// On any persistence failure nothing is written and ErrNotRecorded is
// returned.
func (l *Ledger) RecordTrip(ctx context.Context, in trip.Input) (Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	if in.At.IsZero() {
		in.At = l.now()
	}

	if err := l.lock(ctx); err != nil {
		return Result{}, err
	}
	defer l.unlock()

	snap, err := l.load(ctx)
	if err != nil {
		l.metrics.CommitFailed()
		l.log.Error("trip not recorded, snapshot unavailable", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}

	p := snap.profile.Clone()
	points := emission.Points(in.Mode, in.DistanceKm, p.StreakDays)
	carbon := emission.SavedKg(in.Mode, in.DistanceKm)

	p.StreakDays = streak.Advance(p.StreakDays, p.LastTravelDate, in.At, l.loc)
	p.TotalPoints += points
	p.TotalCarbonSaved += carbon
	p.TravelCount++
	if p.LastTravelDate == nil || in.At.After(*p.LastTravelDate) {
		at := in.At
		p.LastTravelDate = &at
	}

	rec := trip.TravelRecord{
		ID:          trip.NewID(in.At),
		Date:        in.At,
		Mode:        in.Mode,
		Distance:    in.DistanceKm,
		Start:       in.Start,
		End:         in.End,
		CarbonSaved: carbon,
		Points:      points,
		RouteTag:    in.RouteTag,
		Weather:     in.Weather,
	}
	history := trip.Prepend(snap.history, rec, l.limit)

	ach := achievement.Evaluate(p.Achievements, p.Metrics(), history)
	p.Achievements = ach.States

	tasks, rewards := task.Evaluate(ctx, snap.tasks, task.Snapshot{
		TotalCarbonSaved: p.TotalCarbonSaved,
		StreakDays:       p.StreakDays,
		VisitedLandmarks: achievement.VisitedLandmarks(history),
	}, task.Event{Mode: in.Mode, RouteTag: in.RouteTag, Weather: in.Weather})
	p.RewardPoints += rewards.Points
	p.Badges = addBadges(p.Badges, rewards.Badges)

	err = l.commit(ctx, map[string]any{
		store.KeyProfile:       p,
		store.KeyTravelRecords: history,
		store.KeyTasks:         tasks,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		PointsEarned:  points,
		CarbonSaved:   carbon,
		StreakDays:    p.StreakDays,
		NewlyUnlocked: nonNil(ach.NewlyUnlocked),
		Celebrate:     ach.Celebrate(),
		Rewards:       rewards,
		Record:        rec,
	}

	l.metrics.TripRecorded(string(in.Mode), carbon)
	l.metrics.AchievementsUnlocked(ach.NewlyUnlocked)
	l.metrics.TasksCompleted(rewards.Completed)
	l.log.Info("trip recorded",
		zap.String("id", rec.ID),
		zap.String("mode", string(rec.Mode)),
		zap.Float64("distance_km", rec.Distance),
		zap.Int("points", points),
		zap.Int("streak_days", p.StreakDays),
		zap.Ints("unlocked", ach.NewlyUnlocked),
	)
	l.notify(ctx, TopicProfile, EventTripRecorded, res)
	return res, nil
}

func addBadges(have, earned []string) []string {
	out := append([]string{}, have...)
	for _, b := range earned {
		dup := false
		for _, h := range out {
			if h == b {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, b)
		}
	}
	return out
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}

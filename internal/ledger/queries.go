package ledger

import (
	"context"
	"fmt"

	"backend-greentransit/internal/achievement"
	"backend-greentransit/internal/emission"
	"backend-greentransit/internal/profile"
	"backend-greentransit/internal/store"
	"backend-greentransit/internal/streak"
	"backend-greentransit/internal/task"
	"backend-greentransit/internal/trip"

	"go.uber.org/zap"
)

// Profile returns the stored profile. The first access (or one after the
// stored profile was found corrupt) persists a default profile.
func (l *Ledger) Profile(ctx context.Context) (profile.UserProfile, error) {
	p, stored, err := l.loadProfile(ctx, l.store)
	if err != nil {
		return profile.UserProfile{}, err
	}
	if stored {
		return p, nil
	}

	if err := l.lock(ctx); err != nil {
		return profile.UserProfile{}, err
	}
	defer l.unlock()

	// A writer may have created it while we waited.
	p, stored, err = l.loadProfile(ctx, l.source)
	if err != nil || stored {
		return p, err
	}
	if err := l.commit(ctx, map[string]any{store.KeyProfile: p}); err != nil {
		return profile.UserProfile{}, err
	}
	l.log.Info("default profile created")
	l.notify(ctx, TopicProfile, EventProfileCreated, p)
	return p, nil
}

// History returns the bounded travel history, newest first.
func (l *Ledger) History(ctx context.Context) ([]trip.TravelRecord, error) {
	return l.loadHistory(ctx, l.store)
}

func (l *Ledger) Tasks(ctx context.Context) ([]task.Task, error) {
	return l.loadTasks(ctx, l.store)
}

// ResetTasks reopens every task, or only those of the given cadences.
func (l *Ledger) ResetTasks(ctx context.Context, cadences ...task.Cadence) ([]task.Task, error) {
	for _, c := range cadences {
		switch c {
		case task.Daily, task.Weekly, task.Special:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidCadence, c)
		}
	}

	if err := l.lock(ctx); err != nil {
		return nil, err
	}
	defer l.unlock()

	current, err := l.loadTasks(ctx, l.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	tasks := task.Reset(current, cadences...)
	if err := l.commit(ctx, map[string]any{store.KeyTasks: tasks}); err != nil {
		return nil, err
	}
	l.log.Info("tasks reset", zap.Int("cadences", len(cadences)))
	l.notify(ctx, TopicTasks, EventTasksReset, tasks)
	return tasks, nil
}

// Achievements recomputes achievement states from the current snapshot.
// The result is never persisted; only RecordTrip writes achievements.
func (l *Ledger) Achievements(ctx context.Context) ([]achievement.State, error) {
	p, _, err := l.loadProfile(ctx, l.store)
	if err != nil {
		return nil, err
	}
	history, err := l.loadHistory(ctx, l.store)
	if err != nil {
		return nil, err
	}
	return achievement.Evaluate(p.Achievements, p.Metrics(), history).States, nil
}

type StreakReport struct {
	Stored     int  `json:"stored"`
	Scanned    int  `json:"scanned"`
	Consistent bool `json:"consistent"`
}

// VerifyStreak compares the stored streak with one recounted from the
// history. The history is bounded, so streaks longer than it scan short.
func (l *Ledger) VerifyStreak(ctx context.Context) (StreakReport, error) {
	p, _, err := l.loadProfile(ctx, l.store)
	if err != nil {
		return StreakReport{}, err
	}
	history, err := l.loadHistory(ctx, l.store)
	if err != nil {
		return StreakReport{}, err
	}
	scanned := streak.Scan(trip.Dates(history), l.loc)
	r := StreakReport{Stored: p.StreakDays, Scanned: scanned, Consistent: p.StreakDays == scanned}
	if !r.Consistent {
		l.log.Warn("streak mismatch", zap.Int("stored", r.Stored), zap.Int("scanned", r.Scanned))
	}
	return r, nil
}

type Stats struct {
	TotalPoints      int                   `json:"totalPoints"`
	RewardPoints     int                   `json:"rewardPoints"`
	Score            int                   `json:"score"`
	TotalCarbonSaved float64               `json:"totalCarbonSaved"`
	TreesEquivalent  float64               `json:"treesEquivalent"`
	TravelCount      int                   `json:"travelCount"`
	StreakDays       int                   `json:"streakDays"`
	ModeShare        map[emission.Mode]int `json:"modeShare,omitempty"`
	ShareAvailable   bool                  `json:"shareAvailable"`
}

func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	p, _, err := l.loadProfile(ctx, l.store)
	if err != nil {
		return Stats{}, err
	}
	history, err := l.loadHistory(ctx, l.store)
	if err != nil {
		return Stats{}, err
	}
	share, ok := trip.ModeShare(history)
	return Stats{
		TotalPoints:      p.TotalPoints,
		RewardPoints:     p.RewardPoints,
		Score:            p.Score(),
		TotalCarbonSaved: p.TotalCarbonSaved,
		TreesEquivalent:  emission.TreesEquivalent(p.TotalCarbonSaved),
		TravelCount:      p.TravelCount,
		StreakDays:       p.StreakDays,
		ModeShare:        share,
		ShareAvailable:   ok,
	}, nil
}

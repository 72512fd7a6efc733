package profile

import (
	"errors"
	"math"
	"time"

	"backend-greentransit/internal/achievement"
)

// Key is the sole persistent identity of the profile.
const Key = "profile"

var ErrCorrupt = errors.New("profile corrupt")

type UserProfile struct {
	ID               string              `json:"id"`
	TotalPoints      int                 `json:"totalPoints"`
	TotalCarbonSaved float64             `json:"totalCarbonSaved"`
	StreakDays       int                 `json:"streakDays"`
	TravelCount      int                 `json:"travelCount"`
	LastTravelDate   *time.Time          `json:"lastTravelDate"`
	Achievements     []achievement.State `json:"achievements"`
	RewardPoints     int                 `json:"rewardPoints"`
	Badges           []string            `json:"badges"`
}

func Default() UserProfile {
	return UserProfile{
		ID:           Key,
		Achievements: achievement.Defaults(),
		Badges:       []string{},
	}
}

// Score is trip points plus task rewards.
func (p UserProfile) Score() int {
	return p.TotalPoints + p.RewardPoints
}

func (p UserProfile) Metrics() achievement.Metrics {
	return achievement.Metrics{
		TotalCarbonSaved: p.TotalCarbonSaved,
		StreakDays:       p.StreakDays,
		TotalPoints:      p.TotalPoints,
	}
}

// Validate rejects shapes no ledger write could have produced.
func (p UserProfile) Validate() error {
	switch {
	case p.ID != Key:
		return errors.Join(ErrCorrupt, errors.New("unexpected id"))
	case p.TotalPoints < 0, p.StreakDays < 0, p.TravelCount < 0, p.RewardPoints < 0:
		return errors.Join(ErrCorrupt, errors.New("negative counter"))
	case p.TotalCarbonSaved < 0 || math.IsNaN(p.TotalCarbonSaved) || math.IsInf(p.TotalCarbonSaved, 0):
		return errors.Join(ErrCorrupt, errors.New("invalid carbon total"))
	case len(p.Achievements) != len(achievement.Catalog()):
		return errors.Join(ErrCorrupt, errors.New("achievement list size mismatch"))
	}
	for i, a := range p.Achievements {
		if a.ID != i+1 {
			return errors.Join(ErrCorrupt, errors.New("achievement order mismatch"))
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate freely.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Achievements = append([]achievement.State(nil), p.Achievements...)
	out.Badges = append([]string{}, p.Badges...)
	if p.LastTravelDate != nil {
		last := *p.LastTravelDate
		out.LastTravelDate = &last
	}
	return out
}

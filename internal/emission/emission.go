package emission

import (
	"math"
	"strings"
)

type Mode string

const (
	Walking    Mode = "walking"
	Cycling    Mode = "cycling"
	Bus        Mode = "bus"
	Carpool    Mode = "carpool"
	Motorcycle Mode = "motorcycle"
	Car        Mode = "car"
)

// Modes lists every known transport mode in display order.
var Modes = []Mode{Walking, Cycling, Bus, Carpool, Motorcycle, Car}

// grams of CO2 per km
var emissionFactors = map[Mode]float64{
	Walking:    0,
	Cycling:    0,
	Bus:        68,
	Carpool:    48,
	Motorcycle: 103,
	Car:        192,
}

var pointFactors = map[Mode]float64{
	Walking:    10,
	Cycling:    8,
	Bus:        5,
	Carpool:    4,
	Motorcycle: 2,
	Car:        1,
}

const (
	streakBlockDays = 5
	maxStreakSteps  = 5
	kgPerTreeYear   = 20.0
)

// MaxPoints caps the points of a single trip.
const MaxPoints = math.MaxInt32

func ParseMode(s string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(s)))
}

func (m Mode) Known() bool {
	_, ok := emissionFactors[m]
	return ok
}

// ZeroCarbon reports whether the mode emits nothing at all.
func (m Mode) ZeroCarbon() bool {
	return m == Walking || m == Cycling
}

// Green covers the modes that count toward green-commute tasks.
func (m Mode) Green() bool {
	return m == Walking || m == Cycling || m == Bus
}

// EmissionKg returns the kg of CO2 emitted travelling distanceKm by mode.
// Unknown modes emit nothing.
func EmissionKg(mode Mode, distanceKm float64) float64 {
	return emissionFactors[mode] * distanceKm / 1000
}

// SavedKg is the emission avoided compared with driving the same distance.
func SavedKg(mode Mode, distanceKm float64) float64 {
	return math.Max(0, EmissionKg(Car, distanceKm)-EmissionKg(mode, distanceKm))
}

// StreakMultiplier grows by 10% per full five-day block, capped at 1.5.
func StreakMultiplier(streakDays int) float64 {
	if streakDays < 0 {
		streakDays = 0
	}
	steps := streakDays / streakBlockDays
	if steps > maxStreakSteps {
		steps = maxStreakSteps
	}
	return 1 + float64(steps)/10
}

// Points saturates at MaxPoints so totals never wrap.
func Points(mode Mode, distanceKm float64, streakDays int) int {
	p := math.Round(pointFactors[mode] * distanceKm * StreakMultiplier(streakDays))
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p >= MaxPoints {
		return MaxPoints
	}
	return int(p)
}

func TreesEquivalent(carbonSavedKg float64) float64 {
	return carbonSavedKg / kgPerTreeYear
}

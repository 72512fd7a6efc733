package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ledger and route counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	tripsRecorded   *prometheus.CounterVec
	carbonSaved     prometheus.Counter
	commitFailures  prometheus.Counter
	unlocks         *prometheus.CounterVec
	tasksCompleted  *prometheus.CounterVec
	recommendations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tripsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greentransit_trips_recorded_total",
			Help: "Trips committed to the ledger by transport mode.",
		}, []string{"mode"}),
		carbonSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "greentransit_carbon_saved_kg_total",
			Help: "Kilograms of CO2 saved across committed trips.",
		}),
		commitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "greentransit_commit_failures_total",
			Help: "Ledger writes that failed and were discarded.",
		}),
		unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greentransit_achievements_unlocked_total",
			Help: "Achievement unlock transitions by achievement id.",
		}, []string{"achievement"}),
		tasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greentransit_tasks_completed_total",
			Help: "Task completions by task id.",
		}, []string{"task"}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greentransit_route_recommendations_total",
			Help: "Route recommendation requests by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.tripsRecorded,
		m.carbonSaved,
		m.commitFailures,
		m.unlocks,
		m.tasksCompleted,
		m.recommendations,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) TripRecorded(mode string, carbonKg float64) {
	if m == nil {
		return
	}
	m.tripsRecorded.WithLabelValues(mode).Inc()
	if carbonKg > 0 {
		m.carbonSaved.Add(carbonKg)
	}
}

func (m *Metrics) CommitFailed() {
	if m == nil {
		return
	}
	m.commitFailures.Inc()
}

func (m *Metrics) AchievementsUnlocked(ids []int) {
	if m == nil {
		return
	}
	for _, id := range ids {
		m.unlocks.WithLabelValues(strconv.Itoa(id)).Inc()
	}
}

func (m *Metrics) TasksCompleted(ids []int) {
	if m == nil {
		return
	}
	for _, id := range ids {
		m.tasksCompleted.WithLabelValues(strconv.Itoa(id)).Inc()
	}
}

func (m *Metrics) Recommendation(found bool) {
	if m == nil {
		return
	}
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	m.recommendations.WithLabelValues(outcome).Inc()
}

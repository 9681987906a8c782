package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

const namespace = "metrogym"

var (
	runsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "runs_completed_total",
		Help:      "Completed session runs by ended status.",
	}, []string{"status"})

	runsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "runs_cancelled_total",
		Help:      "Sessions discarded without producing a run.",
	})

	runOvertime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "run_overtime_seconds",
		Help:      "Overtime of completed runs against their planned duration.",
		Buckets:   []float64{0, 60, 120, 300, 600, 1200, 1800, 3600},
	})

	disciplineScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "profile",
		Name:      "discipline_score",
		Help:      "Current discipline score (0-100).",
	})

	streakCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "profile",
		Name:      "streak_count",
		Help:      "Current streak of completed sessions.",
	})

	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recently completed run.",
	})

	storageCorrupt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "corrupt_reads_total",
		Help:      "Stored documents that failed to decode and were replaced by defaults.",
	}, []string{"key"})

	generatorFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generator",
		Name:      "failures_total",
		Help:      "Workout generation requests that fell back to manual entry.",
	})
)

func init() {
	prometheus.MustRegister(
		runsCompleted,
		runsCancelled,
		runOvertime,
		disciplineScore,
		streakCount,
		lastRunGauge,
		storageCorrupt,
		generatorFailures,
	)
}

// RecordRunCompleted counts a completed run and its overtime
func RecordRunCompleted(run domain.SessionRun) {
	runsCompleted.WithLabelValues(string(run.EndedStatus)).Inc()
	runOvertime.Observe(float64(run.OvertimeSeconds))
	recordLastRun(run.CreatedAt)
}

func recordLastRun(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastRunGauge.Set(float64(ts.Unix()))
}

// RecordRunCancelled counts a discarded session
func RecordRunCancelled() {
	runsCancelled.Inc()
}

// RecordProfile mirrors the profile aggregates into gauges
func RecordProfile(profile domain.UserProfile) {
	disciplineScore.Set(float64(profile.DisciplineScore))
	streakCount.Set(float64(profile.StreakCount))
}

// RecordStorageCorrupt counts a corrupt document replaced by its default
func RecordStorageCorrupt(key string) {
	storageCorrupt.WithLabelValues(key).Inc()
}

// RecordGeneratorFailure counts a generator fallback
func RecordGeneratorFailure() {
	generatorFailures.Inc()
}

// Handler serves the registered metrics in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

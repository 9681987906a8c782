package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
)

const collectTimeout = 5 * time.Second

// Snapshot reads the persisted profile and run history
type Snapshot func(ctx context.Context) (domain.UserProfile, []domain.SessionRun, error)

// StoreCollector exports the persisted history on every scrape, so a
// long-running process reports runs recorded by other processes.
// Cancelled sessions leave nothing in storage and are not covered.
type StoreCollector struct {
	snapshot Snapshot

	discipline *prometheus.Desc
	lastRun    *prometheus.Desc
	overtime   *prometheus.Desc
	runs       *prometheus.Desc
	streak     *prometheus.Desc
	up         *prometheus.Desc
}

var _ prometheus.Collector = (*StoreCollector)(nil)

// NewStoreCollector creates a collector reading through snapshot
func NewStoreCollector(snapshot Snapshot) *StoreCollector {
	fq := func(name string) string {
		return prometheus.BuildFQName(namespace, "history", name)
	}
	return &StoreCollector{
		snapshot:   snapshot,
		discipline: prometheus.NewDesc(fq("discipline_score"), "Stored discipline score (0-100).", nil, nil),
		lastRun:    prometheus.NewDesc(fq("last_run_timestamp_seconds"), "Unix timestamp of the most recent stored run.", nil, nil),
		overtime:   prometheus.NewDesc(fq("overtime_seconds"), "Total overtime across stored runs.", nil, nil),
		runs:       prometheus.NewDesc(fq("runs"), "Stored runs by ended status.", []string{"status"}, nil),
		streak:     prometheus.NewDesc(fq("streak_count"), "Stored streak of completed sessions.", nil, nil),
		up:         prometheus.NewDesc(fq("up"), "Whether the last read of stored history succeeded.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.discipline
	ch <- c.lastRun
	ch <- c.overtime
	ch <- c.runs
	ch <- c.streak
	ch <- c.up
}

// Collect implements prometheus.Collector
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	profile, runs, err := c.snapshot(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to read stored history for metrics", "error", err)
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)

	byStatus := map[domain.EndedStatus]int{
		domain.StatusEarly:  0,
		domain.StatusLate:   0,
		domain.StatusOnTime: 0,
	}
	overtime := 0
	var latest time.Time
	for _, run := range runs {
		byStatus[run.EndedStatus]++
		overtime += run.OvertimeSeconds
		if run.CreatedAt.After(latest) {
			latest = run.CreatedAt
		}
	}

	for status, n := range byStatus {
		ch <- prometheus.MustNewConstMetric(c.runs, prometheus.GaugeValue, float64(n), string(status))
	}
	ch <- prometheus.MustNewConstMetric(c.overtime, prometheus.GaugeValue, float64(overtime))
	ch <- prometheus.MustNewConstMetric(c.discipline, prometheus.GaugeValue, float64(profile.DisciplineScore))
	ch <- prometheus.MustNewConstMetric(c.streak, prometheus.GaugeValue, float64(profile.StreakCount))
	if !latest.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.lastRun, prometheus.GaugeValue, float64(latest.Unix()))
	}
}

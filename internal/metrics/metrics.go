// Package metrics holds the Prometheus collectors for sweeps and reminder delivery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector methods are safe on a nil receiver so tests can pass nil.
type Collector struct {
	Registry *prometheus.Registry

	Sweeps             *prometheus.CounterVec
	SweepDuration      prometheus.Histogram
	RemindersScheduled prometheus.Counter
	RemindersCancelled prometheus.Counter
	RemindersDelivered prometheus.Counter
	ReminderFailures   *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		Registry: registry,
		Sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweeps_total",
				Help:      "Reminder sweeps by outcome",
			},
			[]string{"outcome"},
		),
		SweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sweep_duration_seconds",
				Help:      "Time taken by a reminder sweep",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RemindersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_scheduled_total",
			Help:      "Reminders scheduled by sweeps",
		}),
		RemindersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_cancelled_total",
			Help:      "Reminders cancelled by sweeps or deletions",
		}),
		RemindersDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_delivered_total",
			Help:      "Reminders delivered by the dispatcher",
		}),
		ReminderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminder_failures_total",
				Help:      "Failed reminder backend or delivery calls",
			},
			[]string{"op"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		c.Sweeps,
		c.SweepDuration,
		c.RemindersScheduled,
		c.RemindersCancelled,
		c.RemindersDelivered,
		c.ReminderFailures,
		c.HTTPRequests,
	)

	return c
}

func (c *Collector) ObserveSweep(outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.Sweeps.WithLabelValues(outcome).Inc()
	c.SweepDuration.Observe(took.Seconds())
}

func (c *Collector) Scheduled(n int) {
	if c == nil {
		return
	}
	c.RemindersScheduled.Add(float64(n))
}

func (c *Collector) Cancelled(n int) {
	if c == nil {
		return
	}
	c.RemindersCancelled.Add(float64(n))
}

func (c *Collector) Delivered() {
	if c == nil {
		return
	}
	c.RemindersDelivered.Inc()
}

func (c *Collector) Failure(op string) {
	if c == nil {
		return
	}
	c.ReminderFailures.WithLabelValues(op).Inc()
}

func (c *Collector) Request(method, route string, status int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

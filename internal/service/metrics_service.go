package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the scheduler runs.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	runsTotal          *prometheus.CounterVec
	remindersScheduled prometheus.Counter
	remindersDuplicate prometheus.Counter
	remindersFailed    prometheus.Counter
	usersSkipped       prometheus.Counter
	parseFailures      prometheus.Counter
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Scheduler runs by target day",
	}, []string{"target"})

	remindersScheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_reminders_scheduled_total",
		Help: "Deferred reminders newly created",
	})
	remindersDuplicate := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_reminders_duplicate_total",
		Help: "Reminder submissions skipped as already scheduled",
	})
	remindersFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_reminders_failed_total",
		Help: "Reminder submissions that failed",
	})
	usersSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_users_skipped_total",
		Help: "Users skipped for missing delivery tokens",
	})
	parseFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_schedule_parse_failures_total",
		Help: "Class sessions skipped for malformed time strings",
	})

	registry.MustRegister(requestDuration, requestTotal, runsTotal,
		remindersScheduled, remindersDuplicate, remindersFailed, usersSkipped, parseFailures)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		runsTotal:          runsTotal,
		remindersScheduled: remindersScheduled,
		remindersDuplicate: remindersDuplicate,
		remindersFailed:    remindersFailed,
		usersSkipped:       usersSkipped,
		parseFailures:      parseFailures,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordRun folds one run summary into the counters.
func (m *MetricsService) RecordRun(target string, summary RunSummary) {
	m.runsTotal.WithLabelValues(target).Inc()
	m.remindersScheduled.Add(float64(summary.RemindersScheduled))
	m.remindersDuplicate.Add(float64(summary.Duplicates))
	m.remindersFailed.Add(float64(summary.Errors))
	m.usersSkipped.Add(float64(summary.SkippedUsers))
	m.parseFailures.Add(float64(summary.ParseFailures))
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	sessions         prometheus.Gauge
	topics           prometheus.Gauge
	deliveries       *prometheus.CounterVec
	dropped          *prometheus.CounterVec
	alertsReported   *prometheus.CounterVec
	confirmations    *prometheus.CounterVec
	notificationJobs *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "presence_sessions",
			Help: "Connected realtime sessions",
		}),
		topics: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "presence_topics",
			Help: "Topics with at least one subscriber",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_events_delivered_total",
			Help: "Events queued to a session",
		}, []string{"event"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_events_dropped_total",
			Help: "Events dropped because a session queue was full",
		}, []string{"event"}),
		alertsReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_reported_total",
			Help: "Alerts persisted",
		}, []string{"type"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alert_confirmations_total",
			Help: "Confirmations persisted",
		}, []string{"confirmation_type"}),
		notificationJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_notification_jobs_total",
			Help: "Push relay jobs by outcome",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessions,
		m.topics,
		m.deliveries,
		m.dropped,
		m.alertsReported,
		m.confirmations,
		m.notificationJobs,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) SetSessions(n int) { m.sessions.Set(float64(n)) }
func (m *Metrics) SetTopics(n int)   { m.topics.Set(float64(n)) }

func (m *Metrics) Delivered(event string) { m.deliveries.WithLabelValues(event).Inc() }
func (m *Metrics) Dropped(event string)   { m.dropped.WithLabelValues(event).Inc() }

func (m *Metrics) AlertReported(alertType string) {
	m.alertsReported.WithLabelValues(alertType).Inc()
}

func (m *Metrics) AlertConfirmed(confirmationType string) {
	m.confirmations.WithLabelValues(confirmationType).Inc()
}

func (m *Metrics) NotificationJob(outcome string) {
	m.notificationJobs.WithLabelValues(outcome).Inc()
}

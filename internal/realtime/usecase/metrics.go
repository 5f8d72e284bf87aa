package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "realtime"

// Metrics groups the hub's Prometheus collectors.
type Metrics struct {
	connections       prometheus.Gauge
	identified        prometheus.Gauge
	rooms             prometheus.Gauge
	eventsReceived    *prometheus.CounterVec
	eventsRejected    *prometheus.CounterVec
	framesDelivered   prometheus.Counter
	framesDropped     prometheus.Counter
	archiveFailures   prometheus.Counter
	connectionsDenied prometheus.Counter
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "connections",
			Help: "Live transport connections.",
		}),
		identified: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "identified_connections",
			Help: "Connections with an identity binding.",
		}),
		rooms: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: "rooms",
			Help: "Public rooms with at least one member.",
		}),
		eventsReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "events_received_total",
			Help: "Inbound events by name.",
		}, []string{"event"}),
		eventsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "events_rejected_total",
			Help: "Inbound events answered with an error, by reason.",
		}, []string{"reason"}),
		framesDelivered: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "frames_delivered_total",
			Help: "Outbound frames queued to connections.",
		}),
		framesDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "frames_dropped_total",
			Help: "Outbound frames dropped because a send buffer was full.",
		}),
		archiveFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "archive_failures_total",
			Help: "Chat messages that could not be archived.",
		}),
		connectionsDenied: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: "connections_denied_total",
			Help: "Connections closed at registration because the limit was reached.",
		}),
	}
}

func (m *Metrics) observeRegistry(r *registry) {
	m.connections.Set(float64(r.connectionCount()))
	m.identified.Set(float64(r.identifiedCount()))
	m.rooms.Set(float64(r.roomCount()))
}

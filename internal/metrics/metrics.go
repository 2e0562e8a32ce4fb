package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const namespace = "trip_roster_service"

var (
	httpBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	dbBuckets       = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	externalBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	rosterBuckets   = []float64{.0001, .0005, .001, .005, .01, .05, .1}
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database pool metrics. The wait values mirror sql.DBStats, which are
	// cumulative since the pool opened, so they are gauges.
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitCount    prometheus.Gauge
	DBConnectionWaitDuration prometheus.Gauge
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// Notification service calls
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Business metrics
	TripsTotal                  prometheus.Gauge
	ParticipantsTotal           prometheus.Gauge
	ConditionalParticipants     prometheus.Gauge
	TripCreatedTotal            prometheus.Counter
	CommitmentUpdatesTotal      *prometheus.CounterVec
	CommitmentWarningsTotal     *prometheus.CounterVec
	ConditionRemindersSentTotal prometheus.Counter
	RosterComputeDuration       prometheus.Histogram

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := factory{promauto.With(registerer)}

	return &Metrics{
		HTTPRequestsTotal: f.counterVec("http_requests_total",
			"Total number of HTTP requests", "method", "endpoint", "status"),
		HTTPRequestDuration: f.histogramVec("http_request_duration_seconds",
			"HTTP request duration in seconds", httpBuckets, "method", "endpoint"),

		DBConnectionsOpen: f.gauge("db_connections_open",
			"Current number of open database connections"),
		DBConnectionsInUse: f.gauge("db_connections_in_use",
			"Current number of in-use database connections"),
		DBConnectionsIdle: f.gauge("db_connections_idle",
			"Current number of idle database connections"),
		DBConnectionsMax: f.gauge("db_connections_max",
			"Maximum number of open database connections configured"),
		DBConnectionWaitCount: f.gauge("db_connection_wait_count",
			"Number of times a query waited for a free connection since startup"),
		DBConnectionWaitDuration: f.gauge("db_connection_wait_duration_seconds",
			"Time spent waiting for a free connection since startup in seconds"),
		DBQueryDuration: f.histogramVec("db_query_duration_seconds",
			"Database query duration in seconds", dbBuckets, "operation", "table"),
		DBQueryErrors: f.counterVec("db_query_errors_total",
			"Total number of database query errors", "operation", "table"),

		ExternalAPIRequestDuration: f.histogramVec("external_api_request_duration_seconds",
			"Notification service request duration in seconds", externalBuckets, "endpoint", "status"),
		ExternalAPIRequestsTotal: f.counterVec("external_api_requests_total",
			"Total number of notification service requests", "endpoint", "method", "status"),
		ExternalAPIErrors: f.counterVec("external_api_errors_total",
			"Total number of failed notification service requests", "endpoint", "error_type"),

		TripsTotal: f.gauge("trips_total",
			"Total number of trips"),
		ParticipantsTotal: f.gauge("participants_total",
			"Total number of trip participants"),
		ConditionalParticipants: f.gauge("conditional_participants",
			"Current number of participants with a conditional commitment"),
		TripCreatedTotal: f.counter("trip_created_total",
			"Total number of trip creation events"),
		CommitmentUpdatesTotal: f.counterVec("commitment_updates_total",
			"Total number of saved commitment updates by resulting status", "status"),
		CommitmentWarningsTotal: f.counterVec("commitment_warnings_total",
			"Total number of advisory warnings returned with commitment updates", "code"),
		ConditionRemindersSentTotal: f.counter("condition_reminders_sent_total",
			"Total number of reminders sent to participants whose conditions are met"),
		RosterComputeDuration: f.histogram("roster_compute_duration_seconds",
			"Time spent grouping and ordering a trip roster in seconds", rosterBuckets),

		logger: logger,
	}
}

// factory stamps the service namespace on every collector
type factory struct {
	promauto.Factory
}

func (f factory) gauge(name, help string) prometheus.Gauge {
	return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) counter(name, help string) prometheus.Counter {
	return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func (f factory) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func (f factory) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return f.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets})
}

func (f factory) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return f.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

// safeExecute runs fn unless m is nil. A panicking collector is logged and
// never reaches the request path.
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic in metrics operation",
				zap.String("operation", operation),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}

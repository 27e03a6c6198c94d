package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Shop Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldSpent,
			Help: HelpTextGoldSpent,
		},
	)

	PurchaseConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchaseConflicts,
			Help: HelpTextPurchaseConflicts,
		},
	)

	PurchasesDeclined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesDeclined,
			Help: HelpTextPurchasesDeclined,
		},
		[]string{LabelReason},
	)

	ReservationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReservationsCreated,
			Help: HelpTextReservationsCreated,
		},
	)

	ReservationsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReservationsExpired,
			Help: HelpTextReservationsExpired,
		},
	)

	SelectionRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSelectionRecomputes,
			Help: HelpTextSelectionRecomputes,
		},
	)

	CurrentWeek = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCurrentWeek,
			Help: HelpTextCurrentWeek,
		},
	)
)

// Store Metrics
var (
	RemoteWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteWriteFailures,
			Help: HelpTextRemoteWriteFailures,
		},
		[]string{LabelOperation},
	)

	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotReloads,
			Help: HelpTextSnapshotReloads,
		},
		[]string{LabelSource},
	)
)

// Worker Metrics
var (
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobsProcessed,
			Help: HelpTextJobsProcessed,
		},
		[]string{LabelJob, LabelResult},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelJob},
	)
)

// SSE Metrics
var (
	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	SSEEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
	)
)

package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Shop metric names
const (
	MetricNameItemsBought         = "shop_items_bought_total"
	MetricNameItemsSold           = "shop_items_sold_total"
	MetricNameGoldSpent           = "shop_gold_spent_total"
	MetricNamePurchaseConflicts   = "shop_purchase_conflicts_total"
	MetricNamePurchasesDeclined   = "shop_purchases_declined_total"
	MetricNameReservationsCreated = "shop_reservations_created_total"
	MetricNameReservationsExpired = "shop_reservations_expired_total"
	MetricNameSelectionRecomputes = "shop_selection_recomputes_total"
	MetricNameCurrentWeek         = "shop_current_week"
)

// Store metric names
const (
	MetricNameRemoteWriteFailures = "store_remote_write_failures_total"
	MetricNameSnapshotReloads     = "store_snapshot_reloads_total"
)

// Background job metric names
const (
	MetricNameJobsProcessed = "worker_jobs_processed_total"
	MetricNameJobDuration   = "worker_job_duration_seconds"
)

// SSE metric names
const (
	MetricNameSSEClients       = "sse_clients"
	MetricNameSSEEventsDropped = "sse_events_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
	HelpTextEventsPublished       = "Total number of events published"
	HelpTextItemsBought           = "Total number of items bought from the shop"
	HelpTextItemsSold             = "Total number of items sold back to the shop"
	HelpTextGoldSpent             = "Total gold spent in the shop"
	HelpTextPurchaseConflicts     = "Purchases rejected because another character bought the item first"
	HelpTextPurchasesDeclined     = "Purchases declined before reaching the store"
	HelpTextReservationsCreated   = "Total number of reservations placed"
	HelpTextReservationsExpired   = "Total number of reservations that lapsed"
	HelpTextSelectionRecomputes   = "Times the weekly selection changed"
	HelpTextCurrentWeek           = "Current campaign week"
	HelpTextRemoteWriteFailures   = "Writes that failed remotely and were kept locally"
	HelpTextSnapshotReloads       = "Snapshot reloads triggered by change notices"
	HelpTextJobsProcessed         = "Background jobs run, by job and outcome"
	HelpTextJobDuration           = "Background job run time in seconds"
	HelpTextSSEClients            = "Connected SSE clients"
	HelpTextSSEEventsDropped      = "SSE events dropped because a client buffer was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelReason    = "reason"
	LabelOperation = "operation"
	LabelSource    = "source"
	LabelJob       = "job"
	LabelResult    = "result"
)

// HTTPLatencyBuckets are the histogram buckets for request latency, in seconds
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"

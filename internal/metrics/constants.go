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

// Game metric names
const (
	MetricNameSeedsPlanted      = "seeds_planted_total"
	MetricNameHarvests          = "harvests_total"
	MetricNameTHCProduced       = "thc_produced_total"
	MetricNamePayments          = "payments_total"
	MetricNameEquipmentUpgrades = "equipment_upgrades_total"
	MetricNameCapacityUpgrades  = "capacity_upgrades_total"
	MetricNameActiveSessions    = "active_sessions"
	MetricNameGrowthTicks       = "growth_ticks_total"
	MetricNamePersistenceErrors = "persistence_errors_total"
	MetricNameArcadeScores      = "arcade_scores_submitted_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextSeedsPlanted      = "Total number of seeds planted"
	HelpTextHarvests          = "Total number of plants harvested"
	HelpTextTHCProduced       = "Total THC credited by harvests"
	HelpTextPayments          = "Total simulated payments by action and outcome"
	HelpTextEquipmentUpgrades = "Total equipment upgrades by slot"
	HelpTextCapacityUpgrades  = "Total plant capacity upgrades"
	HelpTextActiveSessions    = "Current number of connected grow-room sessions"
	HelpTextGrowthTicks       = "Total growth ticks processed"
	HelpTextPersistenceErrors = "Total persistence encode/decode/write failures"
	HelpTextArcadeScores      = "Total arcade score submissions"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelAction  = "action"
	LabelOutcome = "outcome"
	LabelSlot    = "slot"
)

// Payment outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

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

// Game Metrics
var (
	SeedsPlanted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSeedsPlanted,
			Help: HelpTextSeedsPlanted,
		},
	)

	Harvests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHarvests,
			Help: HelpTextHarvests,
		},
	)

	THCProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTHCProduced,
			Help: HelpTextTHCProduced,
		},
	)

	Payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayments,
			Help: HelpTextPayments,
		},
		[]string{LabelAction, LabelOutcome},
	)

	EquipmentUpgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEquipmentUpgrades,
			Help: HelpTextEquipmentUpgrades,
		},
		[]string{LabelSlot},
	)

	CapacityUpgrades = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCapacityUpgrades,
			Help: HelpTextCapacityUpgrades,
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	GrowthTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGrowthTicks,
			Help: HelpTextGrowthTicks,
		},
	)

	PersistenceErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceErrors,
			Help: HelpTextPersistenceErrors,
		},
	)

	ArcadeScores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameArcadeScores,
			Help: HelpTextArcadeScores,
		},
	)
)

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "points",
		Name:      "activities_recorded_total",
		Help:      "Number of activities persisted, by activity type.",
	}, []string{"activity_type"})

	pointsAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "points",
		Name:      "awarded_total",
		Help:      "Total points folded into user totals.",
	})

	foldMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "points",
		Name:      "fold_misses_total",
		Help:      "Activity creations whose referenced user did not exist at fold time.",
	})

	rankSyncFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "ranking",
		Name:      "sync_failures_total",
		Help:      "Failed best-effort syncs of user points into the live ranking.",
	})

	websocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "ws",
		Name:      "clients",
		Help:      "Currently connected websocket clients.",
	})
)

func init() {
	prometheus.MustRegister(
		activitiesRecorded,
		pointsAwarded,
		foldMisses,
		rankSyncFailures,
		websocketClients,
	)
}

// RecordActivity counts a persisted activity and the points it earned.
func RecordActivity(activityType string, points int) {
	activitiesRecorded.WithLabelValues(activityType).Inc()
	pointsAwarded.Add(float64(points))
}

// RecordFoldMiss counts a swallowed missing-user fold.
func RecordFoldMiss() {
	foldMisses.Inc()
}

// RecordRankSyncFailure counts a failed live-ranking sync.
func RecordRankSyncFailure() {
	rankSyncFailures.Inc()
}

// SetWebsocketClients updates the connected-clients gauge.
func SetWebsocketClients(n int) {
	websocketClients.Set(float64(n))
}

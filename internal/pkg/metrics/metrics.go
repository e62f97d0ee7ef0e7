package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Aggregate counters surfaced to administrators alongside the audit trail.
var (
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total compliance emails accepted by the delivery provider",
		},
	)

	EmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "email_failures_total",
			Help: "Total sends that exhausted their retry budget",
		},
	)

	CampaignsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "campaigns_completed_total",
			Help: "Total campaigns that reached completed status",
		},
	)

	CampaignsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "campaigns_failed_total",
			Help: "Total campaigns that reached failed status",
		},
	)

	PortalAccess = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_access_total",
			Help: "Portal token resolutions by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(
		EmailsSent,
		EmailFailures,
		CampaignsCompleted,
		CampaignsFailed,
		PortalAccess,
	)
}

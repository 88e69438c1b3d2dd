package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_emails_sent_total",
			Help: "Total campaign emails delivered to the transport",
		},
	)

	EmailsBounced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_emails_bounced_total",
			Help: "Total campaign emails marked bounced",
		},
		[]string{"reason"},
	)

	EmailSendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_email_send_errors_total",
			Help: "Total transport failures that left a unit retriable",
		},
	)

	DispatchRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_dispatch_capacity_rejections_total",
			Help: "Dispatch calls rejected because the hourly budget was exhausted",
		},
	)

	FormSubmissionsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_form_throttled_total",
			Help: "Public form submissions rejected by the rate limiter",
		},
	)
)

package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vereinsapi"

// Registry holds every metric exposed on /metrics.
var Registry = prometheus.NewRegistry()

// AppInfo is always 1; the version is carried in its labels.
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information",
	},
	[]string{"version", "environment"},
)

// RegistrationsTotal counts stored registrations by how they were submitted
// (public form or manual entry by the board).
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of stored event registrations",
	},
	[]string{"source"},
)

// EventExpiryRunsTotal counts the lazy expiry passes that ran before a read.
var EventExpiryRunsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_expiry_runs_total",
		Help:      "Total number of lazy event expiry passes",
	},
	[]string{"scope"},
)

var (
	AnfragenTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anfragen_total",
			Help:      "Total number of stored contact inquiries",
		},
	)

	MailFailuresTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_failures_total",
			Help:      "Total number of notification mails that could not be sent",
		},
	)
)

// NewsletterSubscriptionsTotal counts subscription changes by action
// (subscribed, reactivated, unsubscribed, imported).
var NewsletterSubscriptionsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_subscriptions_total",
		Help:      "Total number of newsletter subscription changes",
	},
	[]string{"action"},
)

var NewsletterMailsTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_mails_total",
		Help:      "Total number of newsletter mails handed to the SMTP server",
	},
)

var initOnce sync.Once

// Init registers the runtime collectors and the connection pool stats of db.
// It is safe to call more than once; only the first call registers.
func Init(version, environment string, db *sql.DB) {
	initOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if db != nil {
			Registry.MustRegister(collectors.NewDBStatsCollector(db, namespace))
		}
		AppInfo.WithLabelValues(version, environment).Set(1)
	})
}

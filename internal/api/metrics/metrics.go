// Package metrics defines and registers the custom Prometheus metrics for the
// user-management API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of users created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by the access-control middleware.
// Label:
//   - method: the HTTP verb that was gated (PUT or DELETE)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the role check.",
	},
	[]string{"method"},
)

//nolint:gochecknoglobals
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invitationsCreatedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "invitations_created_total",
		Help:      "The total number of invitations created",
	})

	invitationsResolvedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "invitations_resolved_total",
		Help:      "The total number of invitations that reached a terminal state",
	}, []string{"outcome"})

	membersRemovedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "members_removed_total",
		Help:      "The total number of community members removed",
	})
)

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherchat_http_requests_total",
			Help: "Total number of HTTP requests, partitioned by path, method and status code.",
		},
		[]string{"path", "method", "code"},
	)

	aiFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherchat_ai_fallbacks_total",
			Help: "Total number of times the AI path failed and the rule-based path served instead, partitioned by pipeline stage.",
		},
		[]string{"stage"},
	)

	upstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherchat_upstream_errors_total",
			Help: "Total number of failed calls to upstream services, partitioned by upstream.",
		},
		[]string{"upstream"},
	)
)

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by kind and analyzed intent",
		},
		[]string{"kind", "intent"}, // kind: natural / advanced / export / campaigns
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Contact store round-trip duration per search kind",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Contact store failures by search kind and error class",
		},
		[]string{"kind", "error_type"}, // error_type: timeout / storage
	)

	ExportedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_rows_total",
			Help:      "Total contact rows written to CSV exports",
		},
	)

	SuggestionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_failures_total",
			Help:      "Suggestion queries that failed closed",
		},
		[]string{"field"},
	)

	CampaignDecryptFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_decrypt_failures_total",
			Help:      "Campaigns skipped because their payload could not be decrypted",
		},
	)

	CampaignRowsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_rows_skipped_total",
			Help:      "Malformed campaign rows dropped during cross-campaign search",
		},
	)

	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_requests_total",
			Help:      "Total query-assistant requests",
		},
		[]string{"model", "status"},
	)

	AssistantRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assistant_request_duration_seconds",
			Help:      "Query-assistant request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		SearchesTotal,
		QueryDuration,
		QueryErrorsTotal,
		ExportedRowsTotal,
		SuggestionFailuresTotal,
		CampaignDecryptFailuresTotal,
		CampaignRowsSkippedTotal,
		AssistantRequestsTotal,
		AssistantRequestDuration,
	)
	searchMetricsRegistered = true
}

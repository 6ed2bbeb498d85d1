package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_runs_total",
			Help: "Completed harvest runs",
		},
	)
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_pages_fetched_total",
			Help: "Result pages fetched across all runs",
		},
	)
	SummariesCollected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_summaries_total",
			Help: "Listing summaries collected from result pages",
		},
	)
	ListingsEnriched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_enriched_total",
			Help: "Listings successfully enriched with detail data",
		},
	)
	EnrichFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_enrich_failures_total",
			Help: "Listings dropped because detail enrichment failed",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(RunsTotal, PagesFetched, SummariesCollected, ListingsEnriched, EnrichFailures)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}

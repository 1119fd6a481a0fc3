package stylist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "analyses_total",
		Help:      "Completed image analyses by result.",
	}, []string{"result"})

	termFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "term_fallbacks_total",
		Help:      "Search term derivations that used the deterministic fallback.",
	})

	analysisCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "analysis_cache_hits_total",
		Help:      "Analyses served from the cached model reply.",
	})

	catalogSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stylelens",
		Name:      "catalog_searches_total",
		Help:      "Catalog search calls issued during assembly.",
	})
)

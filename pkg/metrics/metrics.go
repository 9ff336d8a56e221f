package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search stages.
const (
	StagePrimary    = "primary"
	StageBackup     = "backup"
	StageLastResort = "last_resort"
)

var (
	SearchQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmate_search_queries_total",
		Help: "Local search queries sent to the provider, by pipeline stage and outcome.",
	}, []string{"stage", "outcome"})

	SearchCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmate_search_cache_total",
		Help: "Search cache lookups by backend and result (hit, miss, error).",
	}, []string{"backend", "result"})

	FranchiseFilteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripmate_franchise_filtered_total",
		Help: "Place candidates dropped by the franchise blacklist.",
	})

	SlotsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripmate_slots_generated_total",
		Help: "Schedule slots produced by the slot generator.",
	})

	TripExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripmate_trip_extractions_total",
		Help: "LLM trip extractions by outcome (ok, fallback, error).",
	}, []string{"outcome"})
)

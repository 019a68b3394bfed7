package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TMDBRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jjreviews_tmdb_requests_total",
		Help: "Requests issued to the TMDB API.",
	})

	EnrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jjreviews_enrichment_failures_total",
		Help: "Reviews served without TMDB metadata because the lookup failed.",
	})

	BattlesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jjreviews_battles_started_total",
		Help: "Movie battles started.",
	})

	RouletteSpins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jjreviews_roulette_spins_total",
		Help: "Watchlist roulette spins.",
	})
)

package leaderboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sg60_leaderboard_submissions_total",
		Help: "Participant submissions by outcome.",
	}, []string{"status"})

	metricFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sg60_leaderboard_fetches_total",
		Help: "Ranked list fetches served.",
	})

	metricBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sg60_leaderboard_ws_messages_total",
		Help: "Leaderboard updates delivered to WebSocket viewers.",
	})
)

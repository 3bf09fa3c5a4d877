package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_saved_total",
		Help: "Messages persisted to the message log.",
	})
	MessagesBroadcast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_broadcast_total",
		Help: "Messages published to the broadcast hub.",
	})
	BroadcastDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_broadcast_dropped_total",
		Help: "Hub deliveries skipped because a subscriber was saturated.",
	})
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_sessions",
		Help: "Currently open websocket sessions.",
	})
	GroupCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_group_cache_hits_total",
		Help: "Group reads served from redis.",
	})
	GroupCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_group_cache_misses_total",
		Help: "Group reads that fell through to mongo.",
	})
)

// Handler returns an http.Handler for Prometheus scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UsersProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "botlens_users_processed_total",
		Help: "Total users with features extracted",
	})
	UsersSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "botlens_users_skipped_total",
		Help: "Total user records skipped",
	}, []string{"reason"})
	TweetsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "botlens_tweets_processed_total",
		Help: "Total tweet events extracted",
	})
	TweetErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "botlens_tweet_errors_total",
		Help: "Total tweet rows dropped",
	})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "botlens_run_duration_seconds",
		Help:    "Per-file run duration seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(UsersProcessed, UsersSkipped, TweetsProcessed, TweetErrors, RunDuration)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObserveRunDuration records one file-level run duration.
func ObserveRunDuration(start time.Time) {
	RunDuration.Observe(time.Since(start).Seconds())
}

// SkipUser increments the skip counter for a reason label.
func SkipUser(reason string) { UsersSkipped.WithLabelValues(reason).Inc() }

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// table labels
const (
	TABLE_POSTS   = "posts"
	TABLE_REPLIES = "replies"
)

var Registry = prometheus.NewRegistry()

var (
	PostsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xconvo_posts_fetched_total",
		Help: "Total raw posts returned by the search api",
	})
	RowsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xconvo_rows_dropped_total",
		Help: "Malformed records dropped while building tables",
	}, []string{"table"})
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xconvo_stage_duration_seconds",
		Help:    "Pipeline stage duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	APIRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xconvo_api_retries_total",
		Help: "Total API retry attempts",
	})
)

func init() {
	Registry.MustRegister(PostsFetched, RowsDropped, StageDuration, APIRetries)
}

// ObserveStage records the duration of stage since start
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func AddDropped(table string, n int) {
	if n > 0 {
		RowsDropped.WithLabelValues(table).Add(float64(n))
	}
}

func IncAPIRetry() { APIRetries.Inc() }

// WriteTextfile dumps the registry for the node exporter textfile collector
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

// FlushOnExit writes the textfile once, from the returned func or from a
// logrus fatal exit, whichever comes first.
func FlushOnExit(path string) func() {
	var once sync.Once
	flush := func() {
		once.Do(func() {
			if err := WriteTextfile(path); err != nil {
				log.WithFields(log.Fields{"caller": "FlushOnExit", "path": path}).Warnln("failed to write metrics:", err)
			}
		})
	}
	log.RegisterExitHandler(flush)
	return flush
}

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogig_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	PostedJobsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogig_jobs_posted_total",
			Help: "Total number of jobs published to the board.",
		},
		[]string{"source"},
	)
	DeletedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ogig_jobs_deleted_total",
			Help: "Total number of jobs removed from the board.",
		},
	)
	AIFormattingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ogig_ai_formatting_duration_seconds",
			Help:    "Duration of each raw-text formatting call in seconds.",
			Buckets: []float64{1, 2, 5, 10, 30, 60},
		},
	)
	BoardSubscribersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ogig_board_subscribers",
			Help: "Current number of live board snapshot subscribers.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(PostedJobsCounter)
	prometheus.MustRegister(DeletedJobsCounter)
	prometheus.MustRegister(AIFormattingDuration)
	prometheus.MustRegister(BoardSubscribersGauge)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}

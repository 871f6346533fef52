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
			Name: "scraper_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SessionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_session_duration_seconds",
			Help:    "Duration of each batch scrape session in seconds.",
			Buckets: []float64{5, 30, 60, 300, 900, 1800},
		},
	)
	ScrapePhaseDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "scraper_phase_duration_seconds",
			Help:       "Duration of each phase of the per-URL scrape pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"phase"},
	)
	ScrapedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_jobs_scraped_total",
			Help: "Total number of successfully scraped job postings.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ScrapedJobsCounter)
	prometheus.MustRegister(SessionDuration)
	prometheus.MustRegister(ScrapePhaseDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}

package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "vatreport_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	pageRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "printful_page_requests_total",
			Help: "Printful orders page requests by result",
		},
		[]string{"result"},
	)
	pageLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "printful_page_latency_seconds",
			Help:    "Printful orders page request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	reportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "report_runs_total",
			Help: "Report generation runs by result",
		},
		[]string{"result"},
	)
	reportLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "report_latency_seconds",
			Help:    "Report generation latency in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"result"},
	)
	reportedOrders = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: metricPrefix + "reported_orders_total",
			Help: "Orders written to reports",
		},
	)
)

// Init registers the collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(pageRequests, pageLatency, reportRuns, reportLatency, reportedOrders)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObservePageRequest(result string, d time.Duration) {
	pageRequests.WithLabelValues(result).Inc()
	pageLatency.Observe(d.Seconds())
}

func ObserveReport(result string, orders int, d time.Duration) {
	reportRuns.WithLabelValues(result).Inc()
	reportLatency.WithLabelValues(result).Observe(d.Seconds())
	if result == ResultSuccess {
		reportedOrders.Add(float64(orders))
	}
}

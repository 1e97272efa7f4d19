package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "pvsizing_"

	// ResultSuccess labels a completed operation.
	ResultSuccess = "success"
	// ResultError labels a failed operation.
	ResultError = "error"
	// ResultWarning labels a calculation that completed with a warning.
	ResultWarning = "warning"
)

var (
	registerOnce sync.Once

	calculateTotal   *prometheus.CounterVec
	calculateLatency *prometheus.HistogramVec

	importTotal    *prometheus.CounterVec
	exportTotal    *prometheus.CounterVec
	completedTotal *prometheus.CounterVec
)

// Init registers sizing service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		calculateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculate_requests_total",
				Help: "Total sizing calculations by result",
			},
			[]string{"result"},
		)
		calculateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculate_latency_seconds",
				Help:    "Sizing calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		importTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "profile_imports_total",
				Help: "Total consumption profile imports by format and result",
			},
			[]string{"format", "result"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		completedTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_completed_total",
				Help: "Total completed calculations by range outcome",
			},
			[]string{"range_exhausted"},
		)

		prometheus.MustRegister(calculateTotal, calculateLatency, importTotal, exportTotal, completedTotal)
	})
}

// ObserveCalculate records one calculation outcome.
func ObserveCalculate(result string, elapsed time.Duration) {
	if calculateTotal == nil {
		return
	}
	calculateTotal.WithLabelValues(result).Inc()
	calculateLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// IncImport records one profile import outcome.
func IncImport(format, result string) {
	if importTotal == nil {
		return
	}
	importTotal.WithLabelValues(format, result).Inc()
}

// IncExport records one report export outcome.
func IncExport(format, result string) {
	if exportTotal == nil {
		return
	}
	exportTotal.WithLabelValues(format, result).Inc()
}

// IncCompleted records one completed calculation event.
func IncCompleted(rangeExhausted bool) {
	if completedTotal == nil {
		return
	}
	completedTotal.WithLabelValues(strconv.FormatBool(rangeExhausted)).Inc()
}

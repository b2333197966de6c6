package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OracleMetrics price resolution metrics
type OracleMetrics struct {
	resolutions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	feedRejects *prometheus.CounterVec
	events      *prometheus.CounterVec
	price       *prometheus.GaugeVec
	priceTime   *prometheus.GaugeVec
}

// HTTPMetrics api request metrics
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var (
	oracleOnce     sync.Once
	oracleRegistry *OracleMetrics

	httpOnce     sync.Once
	httpRegistry *HTTPMetrics
)

// Oracle returns the lazily registered oracle metrics
func Oracle() *OracleMetrics {
	oracleOnce.Do(func() {
		oracleRegistry = &OracleMetrics{
			resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "resolutions_total",
				Help:      "Successful price resolutions segmented by asset and source tier.",
			}, []string{"asset", "source"}),
			failures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "failures_total",
				Help:      "Failed price resolutions segmented by asset and error.",
			}, []string{"asset", "error"}),
			feedRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "feed_rejections_total",
				Help:      "Feed answers rejected by the gateway segmented by asset and reason.",
			}, []string{"asset", "reason"}),
			events: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "events_total",
				Help:      "Oracle events segmented by type.",
			}, []string{"type"}),
			price: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "price",
				Help:      "Last stored price per asset.",
			}, []string{"asset"}),
			priceTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "fairprice",
				Subsystem: "oracle",
				Name:      "price_timestamp_seconds",
				Help:      "Observation time of the last stored price per asset.",
			}, []string{"asset"}),
		}
		prometheus.MustRegister(
			oracleRegistry.resolutions,
			oracleRegistry.failures,
			oracleRegistry.feedRejects,
			oracleRegistry.events,
			oracleRegistry.price,
			oracleRegistry.priceTime,
		)
	})
	return oracleRegistry
}

// ObserveResolution counts a successful resolution
func (m *OracleMetrics) ObserveResolution(asset, source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(labelAsset(asset), source).Inc()
}

// ObserveFailure counts a failed resolution, reason must be a stable error name
func (m *OracleMetrics) ObserveFailure(asset, reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(labelAsset(asset), reason).Inc()
}

// ObserveFeedRejection counts a rejected feed answer
func (m *OracleMetrics) ObserveFeedRejection(asset, reason string) {
	if m == nil {
		return
	}
	m.feedRejects.WithLabelValues(labelAsset(asset), reason).Inc()
}

// ObserveEvent counts an emitted event
func (m *OracleMetrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}

// SetPrice records the stored price, value is the float approximation
func (m *OracleMetrics) SetPrice(asset string, value float64, ts int64) {
	if m == nil {
		return
	}
	m.price.WithLabelValues(labelAsset(asset)).Set(value)
	m.priceTime.WithLabelValues(labelAsset(asset)).Set(float64(ts))
}

// HTTP returns the lazily registered api metrics
func HTTP() *HTTPMetrics {
	httpOnce.Do(func() {
		httpRegistry = &HTTPMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "fairprice",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "API requests segmented by route and status code.",
			}, []string{"route", "status"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "fairprice",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request latency.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route"}),
		}
		prometheus.MustRegister(httpRegistry.requests, httpRegistry.latency)
	})
	return httpRegistry
}

// Observe records one api request
func (m *HTTPMetrics) Observe(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(duration.Seconds())
}

func labelAsset(asset string) string {
	if asset == "" {
		return "unknown"
	}
	return asset
}

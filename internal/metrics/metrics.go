package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "irrigation"

// UploadObserver получает результат каждой загрузки файла
type UploadObserver interface {
	RecordUpload(uploadType string, duration time.Duration, sizeBytes int64, err error)
}

// Metrics - HTTP и upload метрики на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	uploadDuration *prometheus.HistogramVec
	uploadBytes    *prometheus.CounterVec
	uploadErrors   *prometheus.CounterVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "duration_seconds",
			Help:      "Time spent storing uploaded files.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upload_type"}),
		uploadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "bytes_total",
			Help:      "Bytes successfully stored by upload type.",
		}, []string{"upload_type"}),
		uploadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "errors_total",
			Help:      "Rejected or failed uploads by upload type.",
		}, []string{"upload_type"}),
	}

	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.uploadDuration,
		m.uploadBytes,
		m.uploadErrors,
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Registry - для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware считает запросы по шаблону маршрута, а не по сырому пути
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordUpload(uploadType string, duration time.Duration, sizeBytes int64, err error) {
	if m == nil {
		return
	}
	m.uploadDuration.WithLabelValues(uploadType).Observe(duration.Seconds())
	if err != nil {
		m.uploadErrors.WithLabelValues(uploadType).Inc()
		return
	}
	m.uploadBytes.WithLabelValues(uploadType).Add(float64(sizeBytes))
}

// NopObserver - метрики выключены
type NopObserver struct{}

func (NopObserver) RecordUpload(string, time.Duration, int64, error) {}

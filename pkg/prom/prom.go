package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	xhttp "github.com/salestrack/customer-registry/pkg/http"
	"github.com/salestrack/customer-registry/pkg/logger"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemCustomers = "customers"
	SystemFiles     = "files"
)

const (
	MetricCustomersCreated     = "created_total"
	MetricCommunicationsLogged = "communications_logged_total"
	MetricFilesUploaded        = "uploaded_total"
	MetricFilesDeleted         = "deleted_total"
	MetricFileUploadSizeBytes  = "upload_size_bytes"
)

var createLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var counters = make(map[string]prometheus.Counter)
var counterVecs = make(map[string]*prometheus.CounterVec)
var histograms = make(map[string]prometheus.Histogram)

var defaultLabels prometheus.Labels

// Create registers every metric the application emits. Call once at startup.
func Create(host string, env string, nameSpace string) error {
	defaultLabels = prometheus.Labels{"env": env, "instance": host}
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createCounterVec(SystemCustomers, MetricCustomersCreated, []string{"region"}))
	hasError(createCounter(SystemCustomers, MetricCommunicationsLogged))
	hasError(createCounter(SystemFiles, MetricFilesUploaded))
	hasError(createCounter(SystemFiles, MetricFilesDeleted))
	hasError(createHistogram(SystemFiles, MetricFileUploadSizeBytes,
		prometheus.ExponentialBuckets(1024, 4, 8)))

	return err
}

// ListenAndServer exposes the prometheus handler on its own listener.
func ListenAndServer(port string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(port); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func IncrCounter(subsystem, name string) {
	if !MetricSystemEnabled {
		return
	}
	if c, ok := counters[subsystem+name]; ok {
		c.Inc()
	}
}

func IncrCounterVec(subsystem, name string, labelValues ...string) {
	if !MetricSystemEnabled {
		return
	}
	if c, ok := counterVecs[subsystem+name]; ok {
		c.WithLabelValues(labelValues...).Inc()
	}
}

func ObserveHistogram(subsystem, name string, value float64) {
	if !MetricSystemEnabled {
		return
	}
	if h, ok := histograms[subsystem+name]; ok {
		h.Observe(value)
	}
}

func createCounter(subsystem, name string) error {
	createLock.Lock()
	defer createLock.Unlock()
	counters[subsystem+name] = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	})
	return prometheus.Register(counters[subsystem+name])
}

func createCounterVec(subsystem, name string, labels []string) error {
	createLock.Lock()
	defer createLock.Unlock()
	counterVecs[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(counterVecs[subsystem+name])
}

func createHistogram(subsystem, name string, buckets []float64) error {
	createLock.Lock()
	defer createLock.Unlock()
	histograms[subsystem+name] = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Buckets:     buckets,
		ConstLabels: defaultLabels,
	})
	return prometheus.Register(histograms[subsystem+name])
}

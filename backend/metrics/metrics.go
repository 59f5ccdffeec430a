// ABOUTME: Prometheus collectors for HTTP traffic, assessments and dataset loads
// ABOUTME: Recorder methods are nil-safe so components work without metrics wired

package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rainwater"

// Recorder owns the service's collectors and the registry they live in
type Recorder struct {
	gatherer prometheus.Gatherer

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	assessments         *prometheus.CounterVec
	designs             *prometheus.CounterVec
	forecastCache       *prometheus.CounterVec
	datasetLoads        *prometheus.CounterVec
	datasetObservations prometheus.Gauge
}

// New registers all collectors on reg.
func New(reg *prometheus.Registry) (*Recorder, error) {
	r := &Recorder{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed assessments by recommended structure and feasibility.",
		}, []string{"structure_type", "feasibility"}),
		designs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "system_designs_total",
			Help:      "Sized and costed systems by purpose.",
		}, []string{"purpose"}),
		forecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_cache_total",
			Help:      "Forecast lookups by outcome: hit, miss or shared.",
		}, []string{"result"}),
		datasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Rainfall dataset load attempts by source and result.",
		}, []string{"source", "result"}),
		datasetObservations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_observations",
			Help:      "Observations in the rainfall snapshot being served.",
		}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{
		r.httpRequests, r.httpDuration, r.assessments, r.designs,
		r.forecastCache, r.datasetLoads, r.datasetObservations,
	} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) AssessmentCompleted(structureType, feasibility string) {
	if r == nil {
		return
	}
	r.assessments.WithLabelValues(structureType, feasibility).Inc()
}

func (r *Recorder) SystemDesigned(purpose string) {
	if r == nil {
		return
	}
	r.designs.WithLabelValues(purpose).Inc()
}

func (r *Recorder) ForecastLookup(result string) {
	if r == nil {
		return
	}
	r.forecastCache.WithLabelValues(result).Inc()
}

func (r *Recorder) DatasetLoad(source, result string) {
	if r == nil {
		return
	}
	r.datasetLoads.WithLabelValues(source, result).Inc()
}

func (r *Recorder) DatasetSize(observations int) {
	if r == nil {
		return
	}
	r.datasetObservations.Set(float64(observations))
}

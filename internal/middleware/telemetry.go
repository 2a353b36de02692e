package middleware

import (
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type statusRecorder struct {
	response http.ResponseWriter
	status   int
	bytes    int
}

func (r *statusRecorder) Header() http.Header {
	return r.response.Header()
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.response.WriteHeader(status)
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.response.Write(data)
	r.bytes += n
	return n, err
}

// latencyAggregator keeps a rolling window of request durations per
// route so every access log line carries the current p50/p95.
type latencyAggregator struct {
	mu     sync.Mutex
	window int
	routes map[string][]int64
}

func newLatencyAggregator(window int) *latencyAggregator {
	return &latencyAggregator{window: window, routes: make(map[string][]int64)}
}

func (a *latencyAggregator) record(key string, value int64) (int64, int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	samples := append(a.routes[key], value)
	if len(samples) > a.window {
		samples = samples[len(samples)-a.window:]
	}
	a.routes[key] = samples

	sorted := make([]int64, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return percentile(sorted, 0.5), percentile(sorted, 0.95)
}

func percentile(values []int64, p float64) int64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(values)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

var requestLatency = newLatencyAggregator(200)

func Telemetry(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{response: w}

			next.ServeHTTP(recorder, r)

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}

			duration := time.Since(start)
			if logger == nil {
				return
			}

			routePattern := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				routePattern = rc.RoutePattern()
			}
			metricKey := r.Method + " " + routePattern
			if routePattern == "" {
				metricKey = r.Method + " " + r.URL.Path
			}
			p50, p95 := requestLatency.record(metricKey, duration.Milliseconds())

			logger.Info(
				"http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("routePattern", routePattern),
				zap.String("requestId", readRequestID(r)),
				zap.Int("status", status),
				zap.Int("bytes", recorder.bytes),
				zap.Int64("duration_ms", duration.Milliseconds()),
				zap.Int64("p50_ms", p50),
				zap.Int64("p95_ms", p95),
				zap.Bool("error", status >= 500),
				zap.Bool("clientError", status >= 400 && status < 500),
			)
		})
	}
}

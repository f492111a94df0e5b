package devserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts handled requests by method, route template and status.
type Metrics struct {
	requestCount *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
	}

	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The scrape endpoint itself stays out of the counters.
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			m.requestCount.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		})
	}
}

package instrumentation

import (
	"net/http"
	"time"
)

// statusRecorder captures the response status for metric attributes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records a request counter and duration histogram for every
// handled request.
func (i *Instrumentation) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		i.metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status,
			float64(time.Since(start))/float64(time.Millisecond))
	})
}

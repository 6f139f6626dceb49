package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a 500 JSON error. The stack
// goes to the error log, so it also reaches sentry.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				log.WithFields(log.Fields{
					"method": req.Method,
					"route":  routeTemplate(req),
				}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSON(respWriter, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}

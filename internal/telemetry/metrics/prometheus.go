package metrics

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// SetupPrometheus creates the service registry with the runtime collectors and
// any extra collectors (e.g. the db pool stats) registered on it.
func SetupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range extra {
		promRegistry.MustRegister(c)
	}

	return promRegistry
}

// NewMetricsServer builds the server exposing reg on /metrics.
func NewMetricsServer(host string, port int, reg *prometheus.Registry) *http.Server {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{Registry: reg},
	))

	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// ListenAndServe runs srv in the background until it is shut down.
func ListenAndServe(srv *http.Server, name string) {
	go func() {
		log.Debugf(" > %s metrics listening on: [%s]", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("%s metrics, listen and serve: %s", name, err)
		}
	}()
}

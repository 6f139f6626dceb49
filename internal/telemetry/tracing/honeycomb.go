package tracing

import (
	"fmt"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
)

// HoneycombSetup configures the OpenTelemetry SDK with the honeycomb distro.
// Api key and dataset are taken from the HONEYCOMB_API_KEY / OTEL_SERVICE_NAME env vars.
// When tracing is disabled, a no-op shutdown func is returned.
func HoneycombSetup(
	honeycombEnabled bool,
	serviceName string,
	redisClient *redis.Client,
) (func(), error) {
	if !honeycombEnabled {
		log.Debugf("honeycomb tracing disabled for service [%s]", serviceName)
		return func() {}, nil
	}

	if redisClient != nil {
		redisClient.AddHook(redisotel.NewTracingHook())
	}

	// enable multi-span attributes
	bsp := honeycomb.NewBaggageSpanProcessor()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, fmt.Errorf("configure open telemetry: %w", err)
	}

	log.Infof("honeycomb tracing set up for service [%s]", serviceName)
	return otelShutdown, nil
}

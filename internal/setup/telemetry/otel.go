package telemetry

import (
	"context"

	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/uptrace/uptrace-go/uptrace"
)

// ServiceName is reported as the OpenTelemetry service name.
const ServiceName = "tubeguard"

// ConfigureExporter installs the Uptrace exporter for spans recorded by Core.
// It returns a shutdown func that flushes pending spans; both are no-ops without a DSN.
func ConfigureExporter(serviceType ServiceType, version string, cfg *config.Telemetry) func(context.Context) error {
	if cfg.DSN == "" {
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.DSN),
		uptrace.WithServiceName(ServiceName+"-"+serviceType.String()),
		uptrace.WithServiceVersion(version),
		uptrace.WithDeploymentEnvironment(cfg.Environment),
	)

	return uptrace.Shutdown
}

package instrumentation

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Exporter types
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// DefaultMetricInterval is the push interval of the OTLP and stdout metric readers
const DefaultMetricInterval = 10 * time.Second

var (
	metricsExporters = []string{ExporterPrometheus, ExporterOTLP, ExporterStdout}
	tracingExporters = []string{ExporterOTLP, ExporterStdout, ExporterNone}
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is reported as service.name (default: meeting-mcp)
	ServiceName string

	// ServiceVersion is reported as service.version
	ServiceVersion string

	// ServiceInstanceID defaults to the hostname, which is the pod name in Kubernetes
	ServiceInstanceID string

	// DeploymentEnvironment is reported as deployment.environment when set
	DeploymentEnvironment string

	// Kubernetes metadata attached to the resource when set
	K8sNamespace string
	K8sPodName   string

	// Enabled turns metrics and tracing on (INSTRUMENTATION_ENABLED, default true)
	Enabled bool

	// MetricsExporter is one of prometheus (default), otlp or stdout
	MetricsExporter string

	// MetricInterval is the push interval for otlp and stdout metrics
	MetricInterval time.Duration

	// TracingExporter is one of otlp, stdout or none (default)
	TracingExporter string

	// OTLPEndpoint is the collector host:port, without scheme
	OTLPEndpoint string

	// OTLPInsecure sends OTLP over plain HTTP. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the parent-based ratio sampler argument (0.0 to 1.0, default 0.1)
	TraceSamplingRate float64

	// DetailedLabels adds the API key family label to tool metrics
	DetailedLabels bool

	// AuditLogging configures the tool invocation audit log
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled determines if audit logging is active (default: true)
	Enabled bool

	// IncludeArguments writes sanitized tool arguments to audit entries.
	// API keys inside arguments are always masked.
	IncludeArguments bool
}

// DefaultConfig returns a Config read from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:           getEnvOrDefault("OTEL_SERVICE_NAME", "meeting-mcp"),
		ServiceVersion:        "unknown",
		ServiceInstanceID:     getEnvOrDefault("OTEL_SERVICE_INSTANCE_ID", ""),
		DeploymentEnvironment: getEnvOrDefault("OTEL_DEPLOYMENT_ENVIRONMENT", ""),
		K8sNamespace:          getEnvOrDefault("K8S_NAMESPACE", getEnvOrDefault("POD_NAMESPACE", "")),
		K8sPodName:            getEnvOrDefault("K8S_POD_NAME", getEnvOrDefault("HOSTNAME", "")),
		Enabled:               getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:       getEnvOrDefault("METRICS_EXPORTER", ExporterPrometheus),
		MetricInterval:        getEnvDurationOrDefault("METRICS_EXPORT_INTERVAL", DefaultMetricInterval),
		TracingExporter:       getEnvOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:          getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:          getEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:     getEnvFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:        getEnvBoolOrDefault("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:          getEnvBoolOrDefault("AUDIT_LOGGING_ENABLED", true),
			IncludeArguments: getEnvBoolOrDefault("AUDIT_LOGGING_INCLUDE_ARGUMENTS", false),
		},
	}
}

// Validate reports the first invalid setting. Empty exporters are allowed
// and fall back to the defaults.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}
	if c.MetricsExporter != "" && !slices.Contains(metricsExporters, c.MetricsExporter) {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}
	if c.TracingExporter != "" && !slices.Contains(tracingExporters, c.TracingExporter) {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}
	if c.OTLPEndpoint == "" {
		if c.TracingExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
		}
		if c.MetricsExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
		}
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("metric interval must not be negative, got %s", c.MetricInterval)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	parsed, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	parsed, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	parsed, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

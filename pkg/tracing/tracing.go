package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/lineoa/keywordconsole/config"
	"github.com/lineoa/keywordconsole/pkg/logger"
)

type traceExporterFactory func(cfg *config.TracingConfig, log logger.Logger) (trace.Exporter, error)

type viewExporterFactory func(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error)

var traceExporters = map[string]traceExporterFactory{
	"jaeger":      newJaegerExporter,
	"zipkin":      newZipkinExporter,
	"stackdriver": newStackdriverTraceExporter,
	"datadog":     newDatadogTraceExporter,
	"xray":        newXRayExporter,
}

var viewExporters = map[string]viewExporterFactory{
	"prometheus":  newPrometheusExporter,
	"stackdriver": newStackdriverViewExporter,
	"datadog":     newDatadogViewExporter,
}

// Init configures OpenCensus sampling, the trace exporter, the metrics
// exporters and the HTTP and editor views. Disabled tracing is a no-op.
func Init(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return err
	}
	if err := initViewExporters(cfg, log); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	if err := RegisterEditorViews(); err != nil {
		return fmt.Errorf("failed to register editor views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	name := strings.TrimSpace(cfg.TraceExporter)
	if name == "" || name == "none" {
		return nil
	}

	factory, ok := traceExporters[name]
	if !ok {
		return fmt.Errorf("unsupported trace exporter: %s", name)
	}
	exporter, err := factory(cfg, log)
	if err != nil {
		return err
	}
	trace.RegisterExporter(exporter)
	log.WithField("exporter", name).Info("Trace exporter initialized")
	return nil
}

// parseExporterList splits "prometheus, datadog" into names, dropping blanks
// and "none"
func parseExporterList(list string) []string {
	names := []string{}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" || name == "none" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func initViewExporters(cfg *config.TracingConfig, log logger.Logger) error {
	for _, name := range parseExporterList(cfg.MetricsExporter) {
		factory, ok := viewExporters[name]
		if !ok {
			return fmt.Errorf("unsupported metrics exporter: %s", name)
		}
		exporter, err := factory(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", name, err)
		}
		view.RegisterExporter(exporter)
		log.WithField("exporter", name).Info("Metrics exporter initialized")
	}
	return nil
}

func newJaegerExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.JaegerEndpoint == "" {
		return nil, fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}
	exporter, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		Process:           jaeger.Process{ServiceName: cfg.ServiceName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}
	return exporter, nil
}

func newZipkinExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.ZipkinEndpoint == "" {
		return nil, fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}
	return zipkin.NewExporter(zipkinhttp.NewReporter(cfg.ZipkinEndpoint), nil), nil
}

func newStackdriverTraceExporter(cfg *config.TracingConfig, log logger.Logger) (trace.Exporter, error) {
	return newStackdriverExporter(cfg, log)
}

func newStackdriverViewExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	return newStackdriverExporter(cfg, log)
}

func newStackdriverExporter(cfg *config.TracingConfig, log logger.Logger) (*stackdriver.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
	}
	exporter, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}
	return exporter, nil
}

func newDatadogTraceExporter(cfg *config.TracingConfig, log logger.Logger) (trace.Exporter, error) {
	return newDatadogExporter(cfg, log)
}

func newDatadogViewExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	return newDatadogExporter(cfg, log)
}

func newDatadogExporter(cfg *config.TracingConfig, log logger.Logger) (*datadog.Exporter, error) {
	agentAddr := cfg.DatadogAgentAddress
	if agentAddr == "" {
		agentAddr = cfg.AgentEndpoint
	}
	if agentAddr == "" {
		return nil, fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	options := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog exporter error")
		},
	}
	if cfg.DatadogAPIKey != "" {
		options.GlobalTags = map[string]interface{}{"api_key": cfg.DatadogAPIKey}
	}

	exporter, err := datadog.NewExporter(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create Datadog exporter: %w", err)
	}
	return exporter, nil
}

func newXRayExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.XRayRegion == "" {
		return nil, fmt.Errorf("AWS region is required for X-Ray exporter")
	}
	exporter, err := aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}
	return exporter, nil
}

func newPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	exporter, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	if cfg.PrometheusPort > 0 {
		go servePrometheus(exporter, cfg.PrometheusPort, log)
	}
	return exporter, nil
}

func servePrometheus(handler http.Handler, port int, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	log.WithField("port", port).Info("Starting Prometheus metrics server")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithField("error", err.Error()).Error("Prometheus metrics server stopped")
	}
}

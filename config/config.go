package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server          ServerConfig
	Tracing         TracingConfig
	Editor          EditorConfig
	CORSAllowOrigin string
	SeedDemoData    bool
	Environment     string
	LogLevel        string
	Version         string
}

type ServerConfig struct {
	Port int
	Host string
}

// EditorConfig bounds the Flex editor sessions and their image uploads
type EditorConfig struct {
	SessionTTL         time.Duration
	CleanupInterval    time.Duration
	MaxImageBytes      int64
	MaxConcurrentReads int64
	UploadsPerMinute   int
	PreviewTimeout     time.Duration
	PreviewMaxBytes    int
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "stackdriver", "datadog", "xray" or "none"
	TraceExporter string

	JaegerEndpoint       string
	ZipkinEndpoint       string
	StackdriverProjectID string
	DatadogAgentAddress  string
	DatadogAPIKey        string
	XRayRegion           string
	AgentEndpoint        string

	// "prometheus", "stackdriver", "datadog", "none" or a comma-separated list
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // optional env file, e.g. ".env"
}

// Load loads the configuration, reading .env when present
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("SEED_DEMO_DATA", true)

	v.SetDefault("EDITOR_SESSION_TTL", "30m")
	v.SetDefault("EDITOR_CLEANUP_INTERVAL", "1m")
	v.SetDefault("EDITOR_MAX_IMAGE_BYTES", 5*1024*1024)
	v.SetDefault("EDITOR_MAX_CONCURRENT_READS", 4)
	v.SetDefault("EDITOR_UPLOADS_PER_MINUTE", 10)
	v.SetDefault("EDITOR_PREVIEW_TIMEOUT", "2s")
	v.SetDefault("EDITOR_PREVIEW_MAX_BYTES", 100*1024)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "keywordconsole-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_DATADOG_API_KEY", "")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// a missing file is fine
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Editor: EditorConfig{
			SessionTTL:         v.GetDuration("EDITOR_SESSION_TTL"),
			CleanupInterval:    v.GetDuration("EDITOR_CLEANUP_INTERVAL"),
			MaxImageBytes:      v.GetInt64("EDITOR_MAX_IMAGE_BYTES"),
			MaxConcurrentReads: v.GetInt64("EDITOR_MAX_CONCURRENT_READS"),
			UploadsPerMinute:   v.GetInt("EDITOR_UPLOADS_PER_MINUTE"),
			PreviewTimeout:     v.GetDuration("EDITOR_PREVIEW_TIMEOUT"),
			PreviewMaxBytes:    v.GetInt("EDITOR_PREVIEW_MAX_BYTES"),
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:        v.GetString("TRACING_DATADOG_API_KEY"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			AgentEndpoint:        v.GetString("TRACING_AGENT_ENDPOINT"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		SeedDemoData:    v.GetBool("SEED_DEMO_DATA"),
		Environment:     v.GetString("ENVIRONMENT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Version:         v.GetString("VERSION"),
	}

	if err := config.Editor.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (e EditorConfig) validate() error {
	if e.SessionTTL <= 0 {
		return fmt.Errorf("EDITOR_SESSION_TTL must be positive, got %s", e.SessionTTL)
	}
	if e.MaxImageBytes <= 0 {
		return fmt.Errorf("EDITOR_MAX_IMAGE_BYTES must be positive, got %d", e.MaxImageBytes)
	}
	if e.MaxConcurrentReads <= 0 {
		return fmt.Errorf("EDITOR_MAX_CONCURRENT_READS must be positive, got %d", e.MaxConcurrentReads)
	}
	if e.UploadsPerMinute <= 0 {
		return fmt.Errorf("EDITOR_UPLOADS_PER_MINUTE must be positive, got %d", e.UploadsPerMinute)
	}
	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

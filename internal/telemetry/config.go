package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	envEndpoint    = "APIFORGE_OTEL_ENDPOINT"
	envInsecure    = "APIFORGE_OTEL_INSECURE"
	envService     = "APIFORGE_OTEL_SERVICE"
	envDialTimeout = "APIFORGE_OTEL_DIAL_TIMEOUT"
	envHeaders     = "APIFORGE_OTEL_HEADERS"
)

const defaultServiceName = "apiforge"

type Config struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	Version     string
	DialTimeout time.Duration
	Headers     map[string]string
}

// Enabled reports whether spans should leave the process. An empty endpoint
// keeps the instrumenter a noop.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Endpoint:    strings.TrimSpace(getenv(envEndpoint)),
		ServiceName: defaultServiceName,
	}

	if v := strings.TrimSpace(getenv(envInsecure)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Insecure = b
		}
	}
	if v := strings.TrimSpace(getenv(envService)); v != "" {
		cfg.ServiceName = v
	}
	if v := strings.TrimSpace(getenv(envDialTimeout)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DialTimeout = d
		}
	}
	if headers, err := ParseHeaders(getenv(envHeaders)); err == nil {
		cfg.Headers = headers
	}

	return cfg
}

// ParseHeaders splits "k=v, k2=v2" pairs for the OTLP exporter.
func ParseHeaders(raw string) (map[string]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(trimmed, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("malformed header pair %q", pair)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if len(headers) == 0 {
		return nil, nil
	}
	return headers, nil
}

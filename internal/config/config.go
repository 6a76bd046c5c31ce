// Package config loads process configuration from the environment once at
// startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envAPIKey         = "FLEETMON_API_KEY"
	envStaleThreshold = "FLEETMON_STALE_THRESHOLD_SECONDS"
	envPort           = "FLEETMON_PORT"
	envUseTLS         = "FLEETMON_USE_TLS"
	envTLSCert        = "FLEETMON_TLS_CERT"
	envTLSKey         = "FLEETMON_TLS_KEY"
	envLogFile        = "FLEETMON_LOG_FILE"

	defaultStaleThreshold = 300 * time.Second
	defaultPort           = 8000
)

type Config struct {
	APIKey         string
	StaleThreshold time.Duration
	Port           int
	TLSEnabled     bool
	TLSCertPath    string
	TLSKeyPath     string
	LogFile        string
}

// Load reads the environment and applies defaults. It fails only on settings
// that cannot be defaulted: a missing API key or an unusable TLS setup.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:         os.Getenv(envAPIKey),
		StaleThreshold: defaultStaleThreshold,
		Port:           defaultPort,
		TLSEnabled:     envBool(envUseTLS),
		TLSCertPath:    os.Getenv(envTLSCert),
		TLSKeyPath:     os.Getenv(envTLSKey),
		LogFile:        os.Getenv(envLogFile),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s is required", envAPIKey)
	}

	if raw := os.Getenv(envStaleThreshold); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", envStaleThreshold, raw)
		}
		cfg.StaleThreshold = time.Duration(secs) * time.Second
	}

	if raw := os.Getenv(envPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: %q", envPort, raw)
		}
		cfg.Port = port
	}

	if cfg.TLSEnabled && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		return nil, fmt.Errorf("%s is enabled but %s or %s not provided", envUseTLS, envTLSCert, envTLSKey)
	}

	return cfg, nil
}

func envBool(key string) bool {
	val := os.Getenv(key)
	if val == "" {
		return false
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false
	}
	return parsed
}

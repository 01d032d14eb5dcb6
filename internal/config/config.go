// Package config loads and validates engine configuration from
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all engine configuration.
type Config struct {
	// Logging.
	LogLevel string

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool // Use HTTP instead of HTTPS for the OTEL exporter.
	ServiceName  string

	// Algebra defaults.
	RobustThreshold float64 // Discord threshold for robust fusion.
	DecayHalfLife   float64 // Default decay half-life.

	// Merge defaults.
	MergeStrategy    string
	MergeCombination string

	// Batch settings.
	BatchConcurrency int // Worker bound for document fan-out.
}

// Load reads configuration from environment variables with sensible
// defaults. Missing variables use defaults; only malformed values are
// rejected, with every offending variable reported at once.
func Load() (Config, error) {
	var errs []error
	cfg := Config{
		LogLevel:         envStr("SHINRAI_LOG_LEVEL", "info"),
		OTELEndpoint:     envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:      envStr("OTEL_SERVICE_NAME", "shinrai"),
		MergeStrategy:    envStr("SHINRAI_MERGE_STRATEGY", "highest"),
		MergeCombination: envStr("SHINRAI_MERGE_COMBINATION", "noisy_or"),
	}

	cfg.OTELInsecure, errs = collectBool(errs, "OTEL_EXPORTER_OTLP_INSECURE", false)
	cfg.RobustThreshold, errs = collectFloat(errs, "SHINRAI_ROBUST_THRESHOLD", 0.5)
	cfg.DecayHalfLife, errs = collectFloat(errs, "SHINRAI_DECAY_HALF_LIFE", 365)
	cfg.BatchConcurrency, errs = collectInt(errs, "SHINRAI_BATCH_CONCURRENCY", 8)

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return Config{}, fmt.Errorf("config: invalid environment variables:\n  %s", strings.Join(msgs, "\n  "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that configuration values are sane.
func (c Config) Validate() error {
	var errs []error

	if c.RobustThreshold < 0 || c.RobustThreshold > 1 {
		errs = append(errs, errors.New("config: SHINRAI_ROBUST_THRESHOLD must be in [0, 1]"))
	}
	if c.DecayHalfLife <= 0 {
		errs = append(errs, errors.New("config: SHINRAI_DECAY_HALF_LIFE must be positive"))
	}
	if c.BatchConcurrency <= 0 {
		errs = append(errs, errors.New("config: SHINRAI_BATCH_CONCURRENCY must be positive"))
	}
	switch c.MergeStrategy {
	case "highest", "weighted_vote", "recency", "union":
	default:
		errs = append(errs, fmt.Errorf("config: SHINRAI_MERGE_STRATEGY %q is not one of: highest, weighted_vote, recency, union", c.MergeStrategy))
	}
	switch c.MergeCombination {
	case "noisy_or", "average", "max":
	default:
		errs = append(errs, fmt.Errorf("config: SHINRAI_MERGE_COMBINATION %q is not one of: noisy_or, average, max", c.MergeCombination))
	}

	return errors.Join(errs...)
}

// collectInt parses an int env var, appending any error to the accumulator.
func collectInt(errs []error, key string, fallback int) (int, []error) {
	v, err := envInt(key, fallback)
	if err != nil {
		errs = append(errs, err)
	}
	return v, errs
}

// collectBool parses a bool env var, appending any error to the accumulator.
func collectBool(errs []error, key string, fallback bool) (bool, []error) {
	v, err := envBool(key, fallback)
	if err != nil {
		errs = append(errs, err)
	}
	return v, errs
}

// collectFloat parses a float env var, appending any error to the accumulator.
func collectFloat(errs []error, key string, fallback float64) (float64, []error) {
	v, err := envFloat(key, fallback)
	if err != nil {
		errs = append(errs, err)
	}
	return v, errs
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s=%q is not a valid boolean", key, v)
	}
	return b, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid number", key, v)
	}
	return f, nil
}

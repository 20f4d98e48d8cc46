// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultRegistryURL = "https://ondpanon.riziv.fgov.be/SilverPages/fr/Home/SearchByForm?PageOffset=0&PageSize=200"
	DefaultEIDPath     = "eid/patient.eid"
	DefaultFormOutput  = "forms.jsonl"
	DefaultLogFile     = "covrecord.log"
)

// Config is everything main needs to wire the workflow.
type Config struct {
	Registry RegistryConfig
	Redis    RedisConfig
	Log      LogConfig
	Intake   IntakeConfig

	// MetricsAddr is the ops listener address; empty disables it.
	MetricsAddr string
	// MaxAttempts bounds registry searches before manual entry.
	MaxAttempts int
}

type RegistryConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Retries  int
	Backoff  time.Duration
	CacheTTL time.Duration
}

// RedisConfig holds Redis connection settings. An empty URL keeps the
// candidate cache in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	// File is appended to; "-" logs to stderr.
	File string
}

type IntakeConfig struct {
	EIDPath string
	// ExportCommand is run before each card read; empty waits for an export
	// written by someone else.
	ExportCommand []string
	FormOutput    string
	FirstTube     string
	Operator      string
}

// Load reads the given .env files, then the environment. Missing files are
// ignored; variables already set win over file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []string
	r := envReader{errs: &errs}

	cfg := Config{
		Registry: RegistryConfig{
			BaseURL:  r.string("COVRECORD_REGISTRY_URL", DefaultRegistryURL),
			Timeout:  r.duration("COVRECORD_REGISTRY_TIMEOUT", 10*time.Second),
			Retries:  r.int("COVRECORD_REGISTRY_RETRIES", 1),
			Backoff:  r.duration("COVRECORD_REGISTRY_BACKOFF", 500*time.Millisecond),
			CacheTTL: r.duration("COVRECORD_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			URL:          r.string("REDIS_URL", ""),
			PoolSize:     r.int("REDIS_POOL_SIZE", 4),
			MinIdleConns: r.int("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Log: LogConfig{
			Level:  r.string("COVRECORD_LOG_LEVEL", "info"),
			Format: r.string("COVRECORD_LOG_FORMAT", "text"),
			File:   r.string("COVRECORD_LOG_FILE", DefaultLogFile),
		},
		Intake: IntakeConfig{
			EIDPath:       r.string("COVRECORD_EID_PATH", DefaultEIDPath),
			ExportCommand: r.fields("COVRECORD_EID_EXPORT_COMMAND"),
			FormOutput:    r.string("COVRECORD_FORM_OUTPUT", DefaultFormOutput),
			FirstTube:     r.string("COVRECORD_FIRST_TUBE", ""),
			Operator:      r.string("COVRECORD_OPERATOR", os.Getenv("USER")),
		},
		MetricsAddr: r.string("COVRECORD_METRICS_ADDR", ""),
		MaxAttempts: r.int("COVRECORD_MAX_ATTEMPTS", 5),
	}

	if cfg.MaxAttempts < 1 {
		errs = append(errs, "COVRECORD_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.Registry.Retries < 0 {
		errs = append(errs, "COVRECORD_REGISTRY_RETRIES must not be negative")
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

type envReader struct {
	errs *[]string
}

func (r envReader) string(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// fields splits the value on whitespace; unset yields nil.
func (r envReader) fields(key string) []string {
	v := r.string(key, "")
	if v == "" {
		return nil
	}
	return strings.Fields(v)
}

func (r envReader) int(key string, fallback int) int {
	v := r.string(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s: %q is not an integer", key, v))
		return fallback
	}
	return n
}

func (r envReader) duration(key string, fallback time.Duration) time.Duration {
	v := r.string(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s: %q is not a duration", key, v))
		return fallback
	}
	return d
}

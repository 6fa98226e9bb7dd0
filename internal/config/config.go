// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/fikri/scorehub/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the tool.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	LogLevel       logging.Level

	// StorePath locates the durable KV database; empty means in-memory only.
	StorePath string
	CacheTTL  time.Duration `validate:"gt=0"`

	PrimaryBaseURL            string `validate:"required,url"`
	PrimaryKey                string
	PrimaryTimeout            time.Duration `validate:"gt=0"`
	PrimaryMaxRetries         int           `validate:"gte=0"`
	PrimaryCircuitEnabled     bool
	PrimaryCircuitFailures    int           `validate:"gt=0"`
	PrimaryCircuitOpenFor     time.Duration `validate:"gt=0"`
	PrimaryCircuitHalfOpenMax int           `validate:"gt=0"`

	SecondaryBaseURL string        `validate:"required,url"`
	SecondaryTimeout time.Duration `validate:"gt=0"`
	SecondaryRPS     float64       `validate:"gt=0"`

	// MockSeed fixes the placeholder generator; zero means time-seeded.
	MockSeed int64

	WarmWorkers  int           `validate:"gt=0"`
	WarmInterval time.Duration `validate:"gte=0"`

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := getEnvAsDuration("SCOREHUB_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_CACHE_TTL: %w", err)
	}

	primaryTimeout, err := getEnvAsDuration("APIFOOTBALL_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_TIMEOUT: %w", err)
	}
	primaryMaxRetries, err := getEnvAsInt("APIFOOTBALL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_MAX_RETRIES: %w", err)
	}
	primaryCircuitEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	primaryCircuitFailures, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	primaryCircuitOpenFor, err := getEnvAsDuration("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	primaryCircuitHalfOpenMax, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	secondaryTimeout, err := getEnvAsDuration("ESPNFEED_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPNFEED_TIMEOUT: %w", err)
	}
	secondaryRPS, err := getEnvAsFloat("ESPNFEED_RPS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPNFEED_RPS: %w", err)
	}

	mockSeed, err := getEnvAsInt64("SCOREHUB_MOCK_SEED", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_MOCK_SEED: %w", err)
	}

	warmWorkers, err := getEnvAsInt("SCOREHUB_WARM_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_WARM_WORKERS: %w", err)
	}
	warmInterval, err := getEnvAsDuration("SCOREHUB_WARM_INTERVAL", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_WARM_INTERVAL: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "scorehub"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		StorePath: strings.TrimSpace(getEnv("SCOREHUB_STORE_PATH", "")),
		CacheTTL:  cacheTTL,

		PrimaryBaseURL:            getEnv("APIFOOTBALL_BASE_URL", "https://api-football-v1.p.rapidapi.com/v3"),
		PrimaryKey:                strings.TrimSpace(getEnv("APIFOOTBALL_KEY", "")),
		PrimaryTimeout:            primaryTimeout,
		PrimaryMaxRetries:         primaryMaxRetries,
		PrimaryCircuitEnabled:     primaryCircuitEnabled,
		PrimaryCircuitFailures:    primaryCircuitFailures,
		PrimaryCircuitOpenFor:     primaryCircuitOpenFor,
		PrimaryCircuitHalfOpenMax: primaryCircuitHalfOpenMax,

		SecondaryBaseURL: getEnv("ESPNFEED_BASE_URL", "https://site.api.espn.com/apis"),
		SecondaryTimeout: secondaryTimeout,
		SecondaryRPS:     secondaryRPS,

		MockSeed: mockSeed,

		WarmWorkers:  warmWorkers,
		WarmInterval: warmInterval,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "scorehub"),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseInt(value, 10, 64)
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseFloat(value, 64)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return time.ParseDuration(value)
}

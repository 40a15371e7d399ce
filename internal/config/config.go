package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	RunAddress           string
	DatabaseURI          string
	RedisAddr            string
	RedisPassword        string
	BackendAddress       string
	BackendTimeout       time.Duration
	Key                  string
	AutocompleteDebounce time.Duration
	RateLimit            float64
	RateBurst            int
	SessionIdle          time.Duration
	ReportInterval       time.Duration
	Region               model.Region
	ConfigFile           string
	Logger               *zap.SugaredLogger
}

func Default() *Config {
	return &Config{
		RunAddress:           "localhost:8080",
		BackendTimeout:       15 * time.Second,
		AutocompleteDebounce: 400 * time.Millisecond,
		RateLimit:            10,
		RateBurst:            20,
		SessionIdle:          30 * time.Minute,
		ReportInterval:       time.Minute,
		Region:               model.Region{City: "Lagos", State: "Lagos", Country: "Nigeria"},
	}
}

func NewConfig() *Config {
	// a missing .env is normal outside local runs
	_ = godotenv.Load()

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "storefront.log"}

	logger := zap.Must(logCfg.Build())

	cfg := Default()
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for sessions")
	flag.StringVar(&cfg.BackendAddress, "b", "", "Order service base URL")
	flag.StringVar(&cfg.Key, "k", "", "Secret for visitor tokens and session sealing")
	flag.StringVar(&cfg.ConfigFile, "c", "", "Config file (yaml, json or env)")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	if cfg.ConfigFile != "" {
		if err := ReadConfigFile(cfg, cfg.ConfigFile); err != nil {
			cfg.Logger.Fatalf("read config file: %v", err)
		}
	}

	if err := ReadServerEnvironment(cfg); err != nil {
		cfg.Logger.Fatalf("read environment: %v", err)
	}

	return cfg
}

// ReadConfigFile applies the keys present in the file at path. Keys use the
// same names as the environment variables.
func ReadConfigFile(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return apply(cfg, func(key string) string {
		if !v.IsSet(key) {
			return ""
		}
		return v.GetString(key)
	})
}

// ReadServerEnvironment lets environment variables override flags and the config file.
func ReadServerEnvironment(cfg *Config) error {
	return apply(cfg, os.Getenv)
}

func apply(cfg *Config, get func(string) string) error {
	strs := map[string]*string{
		"RUN_ADDRESS":     &cfg.RunAddress,
		"DATABASE_URI":    &cfg.DatabaseURI,
		"REDIS_ADDR":      &cfg.RedisAddr,
		"REDIS_PASSWORD":  &cfg.RedisPassword,
		"BACKEND_ADDRESS": &cfg.BackendAddress,
		"STOREFRONT_KEY":  &cfg.Key,
		"HOME_CITY":       &cfg.Region.City,
		"HOME_STATE":      &cfg.Region.State,
		"HOME_COUNTRY":    &cfg.Region.Country,
	}
	for key, dst := range strs {
		if val := get(key); val != "" {
			*dst = val
		}
	}

	durations := map[string]*time.Duration{
		"BACKEND_TIMEOUT":       &cfg.BackendTimeout,
		"AUTOCOMPLETE_DEBOUNCE": &cfg.AutocompleteDebounce,
		"SESSION_IDLE":          &cfg.SessionIdle,
		"REPORT_INTERVAL":       &cfg.ReportInterval,
	}
	for key, dst := range durations {
		val := get(key)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if val := get("RATE_LIMIT"); val != "" {
		limit, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}
	if val := get("RATE_BURST"); val != "" {
		burst, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("RATE_BURST: %w", err)
		}
		cfg.RateBurst = burst
	}

	return nil
}

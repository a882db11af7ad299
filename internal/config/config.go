package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// storage backend: memory | file | sqlite | redis
	Storage    string `toml:"storage"`
	StorageDir string `toml:"storage_dir"`
	SqlitePath string `toml:"sqlite_path"`
	RedisHost  string `toml:"redis_host"`
	RedisPort  string `toml:"redis_port"`
	// mock engine behaviour
	MockLatencyMs             int  `toml:"mock_latency_ms"`
	EnforceWriteAuthorization bool `toml:"enforce_write_authorization"`
	SignInRatePerMin          int  `toml:"signin_rate_per_min"`

	Environment string `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var configs Toml
	if _, err := toml.DecodeFile(path, &configs); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := configs.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	cfg.Environment = env
	return cfg, nil
}

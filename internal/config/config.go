package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// http
	AllowedOrigins    []string      `toml:"allowed_origins"`
	RequestsPerMinute int           `toml:"requests_per_minute"`
	SessionTTL        time.Duration `toml:"session_ttl"`
	// plan generation
	OpenAIModel           string        `toml:"openai_model"`
	GenerationTimeout     time.Duration `toml:"generation_timeout"`
	GenerationRatePerHour int           `toml:"generation_rate_per_hour"`
	WorkerConcurrency     int           `toml:"worker_concurrency"`
	ReaperSchedule        string        `toml:"reaper_schedule"`
	ReaperGrace           time.Duration `toml:"reaper_grace"`
	WorkoutsHistoryLimit  int           `toml:"workouts_history_limit"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, fmt.Errorf("no config for env: %s", env)
		}
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, fmt.Errorf("no config for env: %s", env)
		}
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of the given env,
// with defaults filled in for the unset fields.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 7 * 24 * time.Hour
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 600
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = 2 * time.Minute
	}
	if c.ReaperGrace <= 0 {
		c.ReaperGrace = time.Minute
	}
	if c.WorkerConcurrency <= 0 {
		c.WorkerConcurrency = 2
	}
	if c.WorkoutsHistoryLimit <= 0 {
		c.WorkoutsHistoryLimit = 50
	}
	if c.ReaperSchedule == "" {
		c.ReaperSchedule = "@every 1m"
	}
}

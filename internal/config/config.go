package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/dataverse/internal/repository"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

type DataverseCfg struct {
	BaseURL string        `env:"DATAVERSE_BASE_URL"`
	Token   string        `env:"DATAVERSE_TOKEN"`
	Timeout time.Duration `env:"DATAVERSE_TIMEOUT" envDefault:"30s"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Apply sets level and formatter of logger
func (c LogCfg) Apply(logger *logrus.Logger) error {
	lvl, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q - %w", c.Level, err)
	}

	switch strings.ToLower(c.Format) {
	case logFormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case logFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format %q", c.Format)
	}

	logger.SetLevel(lvl)
	return nil
}

type TrackerCfg struct {
	RedisAddr     string        `env:"TRACKER_REDIS_ADDR" envDefault:""`
	RedisPassword string        `env:"TRACKER_REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"TRACKER_REDIS_DB" envDefault:"0"`
	TimeToLive    time.Duration `env:"TRACKER_TTL" envDefault:"168h"`
}

// UseRedis reports whether runs must be tracked in redis
func (c TrackerCfg) UseRedis() bool {
	return c.RedisAddr != ""
}

type RunCfg struct {
	KeepEntities bool `env:"RUN_KEEP_ENTITIES" envDefault:"false"`
}

type Config struct {
	DataverseCfg DataverseCfg
	LogCfg       LogCfg
	TrackerCfg   TrackerCfg
	RunCfg       RunCfg
}

// RepositoryConfig derives configuration of entity repositories
func (c Config) RepositoryConfig() repository.Config {
	return repository.Config{BaseURL: c.DataverseCfg.BaseURL}
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	cfg.DataverseCfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.DataverseCfg.BaseURL), "/")
	u, err := url.Parse(cfg.DataverseCfg.BaseURL)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse DATAVERSE_BASE_URL - %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("DATAVERSE_BASE_URL must be absolute url, got %q", cfg.DataverseCfg.BaseURL)
	}

	if strings.TrimSpace(cfg.DataverseCfg.Token) == "" {
		return cfg, errors.New("DATAVERSE_TOKEN must not be blank")
	}

	if cfg.DataverseCfg.Timeout <= 0 {
		return cfg, fmt.Errorf("DATAVERSE_TIMEOUT must be positive, got %s", cfg.DataverseCfg.Timeout)
	}

	return cfg, nil
}

// Package config holds fitsstats settings and loads them from defaults,
// an optional YAML file and the environment.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

const (
	envPrefix  = "FITS_"
	envConfig  = "FITS_CONFIG"
	envDBPath  = "DB_PATH"
	defaultDB  = "../../data/fits.db"
	defaultLog = "info"
)

type Config struct {
	// DBPath is the SQLite leaderboard database. DB_PATH wins over FITS_DB_PATH.
	DBPath string `koanf:"db_path"`
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFile, when set, also receives JSON log lines with size rotation.
	LogFile string `koanf:"log_file"`
	// Theme names a console color theme.
	Theme string `koanf:"theme"`
	// WeekConsistencyDays and MonthConsistencyDays gate the consistency rankings.
	WeekConsistencyDays  int `koanf:"week_consistency_days"`
	MonthConsistencyDays int `koanf:"month_consistency_days"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		DBPath:               defaultDB,
		LogLevel:             defaultLog,
		Theme:                "default",
		WeekConsistencyDays:  3,
		MonthConsistencyDays: 5,
	}
}

// Load layers, low to high: defaults, the YAML file named by FITS_CONFIG,
// FITS_* variables, then DB_PATH.
func Load() (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Join(ErrLoadConfig, err)
		}
	}

	// FITS_LOG_LEVEL -> log_level
	fitsEnv := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(fitsEnv, nil); err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	// An empty DB_PATH counts as unset.
	if path := os.Getenv(envDBPath); path != "" {
		if err := k.Set("db_path", path); err != nil {
			return nil, errors.Join(ErrLoadConfig, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.Join(ErrInvalidConfig, errors.New("db_path must not be empty"))
	}
	if c.WeekConsistencyDays < 1 || c.MonthConsistencyDays < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("consistency days must be at least 1"))
	}
	return nil
}

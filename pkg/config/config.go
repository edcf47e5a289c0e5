package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for all shishapos variables.
const EnvPrefix = "shishapos"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Export ExportConfig
	Alerts AlertsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHISHAPOS_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHISHAPOS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHISHAPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHISHAPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything
	// in-process, which the tests rely on.
	Path        string `envconfig:"SHISHAPOS_DB_PATH" default:"shishapos.db"`
	AutoMigrate bool   `envconfig:"SHISHAPOS_AUTO_MIGRATE" default:"true"`
}

type ExportConfig struct {
	// Dir receives a JSON snapshot of every collection after each
	// successful save. Empty disables the export.
	Dir string `envconfig:"SHISHAPOS_EXPORT_DIR" default:"exports"`
}

type AlertsConfig struct {
	// ThresholdOverride pins the low-stock threshold. Zero means the
	// threshold is derived from the inventory's own quantity distribution.
	ThresholdOverride int `envconfig:"SHISHAPOS_LOW_STOCK_THRESHOLD" default:"0"`
}

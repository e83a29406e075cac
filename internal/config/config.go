package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Predict    PredictConfig    `mapstructure:"predict"`
	Projection ProjectionConfig `mapstructure:"projection"`
	Report     ReportConfig     `mapstructure:"report"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Profiles   ProfilesConfig   `mapstructure:"profiles"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	ExportDir string `mapstructure:"export_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type PredictConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProjectionConfig holds the chart projection policy. Growth is "compound"
// or "additive".
type ProjectionConfig struct {
	Horizon         int     `mapstructure:"horizon"`
	EstimateRate    float64 `mapstructure:"estimate_rate"`
	PlaceholderRate float64 `mapstructure:"placeholder_rate"`
	PlaceholderBase float64 `mapstructure:"placeholder_base"`
	Growth          string  `mapstructure:"growth"`
}

type ReportConfig struct {
	Currency               string  `mapstructure:"currency"`
	Timezone               string  `mapstructure:"timezone"`
	DefaultExpectedPension float64 `mapstructure:"default_expected_pension"`
	DefaultPostalCode      string  `mapstructure:"default_postal_code"`
}

type StorageConfig struct {
	DSN string `mapstructure:"dsn"`
}

type ProfilesConfig struct {
	Path string `mapstructure:"path"`
}

const envPrefix = "PENSION"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.export_dir", "exports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("predict.url", "http://localhost:8000/api/predict")
	v.SetDefault("predict.timeout", 10*time.Second)
	v.SetDefault("projection.horizon", 5)
	v.SetDefault("projection.estimate_rate", 0.03)
	v.SetDefault("projection.placeholder_rate", 0.05)
	v.SetDefault("projection.placeholder_base", 1000.0)
	v.SetDefault("projection.growth", "compound")
	v.SetDefault("report.currency", "PLN")
	v.SetDefault("report.timezone", "Europe/Warsaw")
	v.SetDefault("report.default_expected_pension", 5000.0)
	v.SetDefault("report.default_postal_code", "00-001")
	v.SetDefault("storage.dsn", "file:usage.db")
	v.SetDefault("profiles.path", "")
}

// Load reads defaults, an optional config file and the environment, in that
// order of increasing precedence. PORT is honoured for server.port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Projection.Horizon <= 0 {
		return fmt.Errorf("projection.horizon must be positive, got %d", c.Projection.Horizon)
	}
	switch c.Projection.Growth {
	case "compound", "additive":
	default:
		return fmt.Errorf("projection.growth must be compound or additive, got %q", c.Projection.Growth)
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("invalid report.timezone: %w", err)
	}
	return nil
}

// Location returns the report time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset Dataset `yaml:"dataset" mapstructure:"dataset"`
	Geocode Geocode `yaml:"geocode" mapstructure:"geocode"`
	Server  Server  `yaml:"server" mapstructure:"server"`
	Log     Log     `yaml:"log" mapstructure:"log"`
}

// Dataset configures the cadastral data source.
type Dataset struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Geocode configures the geocoding resolver.
type Geocode struct {
	GoogleAPIKey     string `yaml:"google_api_key" mapstructure:"google_api_key"`
	UserAgent        string `yaml:"user_agent" mapstructure:"user_agent"`
	CachePath        string `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLDays     int    `yaml:"cache_ttl_days" mapstructure:"cache_ttl_days"`
	BatchConcurrency int    `yaml:"batch_concurrency" mapstructure:"batch_concurrency"`
	DefaultCountry   string `yaml:"default_country" mapstructure:"default_country"`
}

// Server configures the REST API server.
type Server struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CATASTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "data/bogota/TPREDIO.csv")
	v.SetDefault("geocode.google_api_key", "")
	v.SetDefault("geocode.cache_path", "")
	v.SetDefault("geocode.user_agent", "catastro-api/1.0")
	v.SetDefault("geocode.cache_ttl_days", 30)
	v.SetDefault("geocode.batch_concurrency", 4)
	v.SetDefault("geocode.default_country", "co")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg Log) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

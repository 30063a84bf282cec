// Package config loads application configuration and initializes logging.
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
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Bounds   BoundsConfig   `yaml:"bounds" mapstructure:"bounds"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the input data.
type DataConfig struct {
	Folder string `yaml:"folder" mapstructure:"folder"`
	File   string `yaml:"file" mapstructure:"file"`
}

// OutputConfig configures the artifact directory layout.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// AnalysisConfig holds the top-N limits and numeric knobs of the pipeline.
type AnalysisConfig struct {
	TopCrimeTypes       int     `yaml:"top_crime_types" mapstructure:"top_crime_types"`
	TopTrendTypes       int     `yaml:"top_trend_types" mapstructure:"top_trend_types"`
	TopAreas            int     `yaml:"top_areas" mapstructure:"top_areas"`
	TopLocations        int     `yaml:"top_locations" mapstructure:"top_locations"`
	CoordinatePrecision int     `yaml:"coordinate_precision" mapstructure:"coordinate_precision"`
	RejectWarnRatio     float64 `yaml:"reject_warn_ratio" mapstructure:"reject_warn_ratio"`
}

// BoundsConfig defines the plausible bounding box of the study region.
// When Shapefile is set, the box is derived from the boundary shapes
// instead of the static values.
type BoundsConfig struct {
	MinLat    float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat    float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon    float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon    float64 `yaml:"max_lon" mapstructure:"max_lon"`
	Shapefile string  `yaml:"shapefile" mapstructure:"shapefile"`
}

// FetchConfig configures the police archive downloader.
type FetchConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	Force          string  `yaml:"force" mapstructure:"force"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the artifact server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
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
	v.SetEnvPrefix("CRIMESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

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

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.folder", "data/raw")
	v.SetDefault("data.file", "merged_file.csv")
	v.SetDefault("output.dir", "output")
	v.SetDefault("analysis.top_crime_types", 10)
	v.SetDefault("analysis.top_trend_types", 5)
	v.SetDefault("analysis.top_areas", 15)
	v.SetDefault("analysis.top_locations", 20)
	v.SetDefault("analysis.coordinate_precision", 5)
	v.SetDefault("analysis.reject_warn_ratio", 0.05)
	// Cambridge and surrounds.
	v.SetDefault("bounds.min_lat", 51.9)
	v.SetDefault("bounds.max_lat", 52.5)
	v.SetDefault("bounds.min_lon", -0.3)
	v.SetDefault("bounds.max_lon", 0.6)
	v.SetDefault("fetch.base_url", "https://data.police.uk/data/archive")
	v.SetDefault("fetch.force", "cambridgeshire")
	v.SetDefault("fetch.requests_per_sec", 2.0)
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "crimescope.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
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

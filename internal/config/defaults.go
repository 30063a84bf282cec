package config

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration with every default applied and no file
// or environment input.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal defaults")
	}
	return &cfg, nil
}

// DefaultYAML renders the default configuration as a YAML document,
// suitable for seeding a config.yaml.
func DefaultYAML() ([]byte, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "config: marshal defaults")
	}
	return out, nil
}

// Package factory loads, defaults and validates the YAML configuration of
// the transcoding tool.
package factory

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/eyexzy/serde-practice/internal/logger"
)

const (
	// DefaultConfigPath is used when no -c flag is given.
	DefaultConfigPath = "config/serdecfg.yaml"
	// DefaultInputPath is the request read when input.path is empty.
	DefaultInputPath = "request.json"
)

// Loader provides methods to load and validate the configuration.
type Loader interface {
	Load(path string) (*Config, error)
}

// DefaultLoader is a simple YAML file loader/validator with defaults.
type DefaultLoader struct{}

// Load reads YAML from the given path, applies defaults, and validates.
func (l *DefaultLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal yaml")
	}
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ReadConfig loads the configuration at path. An empty path yields Default().
func ReadConfig(path string) (*Config, error) {
	if path == "" {
		logger.CfgLog.Infof("no config file given, using defaults")
		return Default(), nil
	}

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	logger.CfgLog.Infof(
		"config loaded path=%s input=%s(%s) outputs=%v storage=%s",
		path, cfg.Input.Path, cfg.Input.Format, cfg.Output.Formats, cfg.Storage.Driver,
	)
	return cfg, nil
}

package factory

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration loaded from config/serdecfg.yaml.
type Config struct {
	Info    InfoSection    `yaml:"info"`
	Input   InputSection   `yaml:"input"`
	Output  OutputSection  `yaml:"output"`
	Storage StorageSection `yaml:"storage"`
	Event   EventSection   `yaml:"event"`
	Logging LoggingSection `yaml:"logging"`
	Debug   DebugSection   `yaml:"debug"`
}

// ---------- info ----------

type InfoSection struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// ---------- input ----------

type InputSection struct {
	Path   string `yaml:"path"`   // e.g. "request.json"
	Format string `yaml:"format"` // "json" | "yaml" | "toml"
}

// ---------- output ----------

type OutputSection struct {
	Formats []string `yaml:"formats"` // encode targets, in print order
	Pretty  bool     `yaml:"pretty"`  // indent JSON output
}

// ---------- storage ----------

type StorageSection struct {
	Driver   string `yaml:"driver"` // "memory" | "file"
	Dir      string `yaml:"dir"`    // required for "file"
	MaxItems int    `yaml:"maxItems,omitempty"`
}

// ---------- event ----------

// EventSection is the event pushed through the date codec round trip.
type EventSection struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

// ---------- logging ----------

type LoggingSection struct {
	Level        string `yaml:"level"` // "trace" | "debug" | "info" | "warn" | "error" | "fatal" | "panic"
	ReportCaller bool   `yaml:"reportCaller"`
}

// ---------- debug ----------

type DebugSection struct {
	DumpDecoded bool `yaml:"dumpDecoded"` // spew dump of the decoded request
}

var supportedFormats = []string{"json", "yaml", "toml"}

// ---------- defaults ----------

func applyDefaults(cfg *Config) {
	// input
	if strings.TrimSpace(cfg.Input.Path) == "" {
		cfg.Input.Path = DefaultInputPath
	}
	if strings.TrimSpace(cfg.Input.Format) == "" {
		cfg.Input.Format = "json"
	}
	cfg.Input.Format = strings.ToLower(strings.TrimSpace(cfg.Input.Format))
	// output
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = append([]string(nil), supportedFormats...)
	}
	for i, format := range cfg.Output.Formats {
		cfg.Output.Formats[i] = strings.ToLower(strings.TrimSpace(format))
	}
	// storage
	if strings.TrimSpace(cfg.Storage.Driver) == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Storage.MaxItems < 0 {
		cfg.Storage.MaxItems = 0
	}
	// event
	if strings.TrimSpace(cfg.Event.Name) == "" {
		cfg.Event.Name = "Concert"
	}
	if strings.TrimSpace(cfg.Event.Date) == "" {
		cfg.Event.Date = "2024-11-15"
	}
	// logging
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}

// ---------- validation helpers ----------

func isSupportedFormat(format string) bool {
	for _, supported := range supportedFormats {
		if format == supported {
			return true
		}
	}
	return false
}

// ---------- Validate ----------

func validateConfig(cfg *Config) error {
	// input
	if !isSupportedFormat(cfg.Input.Format) {
		return fmt.Errorf("input.format unsupported: %q", cfg.Input.Format)
	}

	// output.formats
	seen := make(map[string]struct{}, len(cfg.Output.Formats))
	for i, format := range cfg.Output.Formats {
		if !isSupportedFormat(format) {
			return fmt.Errorf("output.formats[%d] unsupported: %q", i, format)
		}
		if _, ok := seen[format]; ok {
			return fmt.Errorf("output.formats[%d] duplicated: %q", i, format)
		}
		seen[format] = struct{}{}
	}

	// storage
	switch cfg.Storage.Driver {
	case "memory":
	case "file":
		if strings.TrimSpace(cfg.Storage.Dir) == "" {
			return fmt.Errorf("storage.dir required for driver %q", cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver unsupported: %q", cfg.Storage.Driver)
	}
	if cfg.Storage.MaxItems < 0 {
		return fmt.Errorf("storage.maxItems must be >= 0")
	}

	// logging
	switch strings.ToLower(cfg.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level unsupported: %q", cfg.Logging.Level)
	}
	return nil
}

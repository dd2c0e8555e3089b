package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/danmuck/fusionctl/internal/logging"
)

const DefaultPath = "~/.config/fusionctl/config.toml"

const (
	OutputHex    = "hex"
	OutputSpaced = "spaced"
)

// Config drives the fusionctl tool. The codec itself takes no configuration.
type Config struct {
	LogLevel string
	Output   string
	Offset   int
}

type fileConfig struct {
	LogLevel string `toml:"log_level"`
	Output   string `toml:"output"`
	Offset   int    `toml:"offset"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output:   OutputHex,
		Offset:   0,
	}
}

// ResolvePath expands a leading ~ and falls back to DefaultPath when path is empty.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config path expand failed (%s): %w", path, err)
	}
	return expanded, nil
}

// Load overlays the keys defined in the toml file at path onto DefaultConfig.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(resolved, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", resolved, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", resolved, undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("offset") {
		cfg.Offset = raw.Offset
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", resolved, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields DefaultConfig.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	switch cfg.Output {
	case OutputHex, OutputSpaced:
	default:
		return fmt.Errorf("unknown output %q", cfg.Output)
	}
	if cfg.Offset < 0 {
		return fmt.Errorf("offset must not be negative: %d", cfg.Offset)
	}
	return nil
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/client"
	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "lexctl-config"

// GlobalConfig holds shared configuration for all lexctl commands. It is
// injected into the cobra command context by the root command's
// PersistentPreRunE hook and consumed by all subcommands.
type GlobalConfig struct {
	ServerURL      string
	NonInteractive bool
	Provider       *client.Provider
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics. Only for use in
// RunE functions, after the root command has injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("lexctl: config not found in context - this is a bug in lexctl")
	}
	return cfg
}

// FileConfig is the optional ~/.lexctl/config.yaml. Flags override it.
type FileConfig struct {
	ServerURL string `yaml:"server_url"`
	LogLevel  string `yaml:"log_level"`
}

// LoadFile reads the config file from the default location. A missing file
// yields a zero config.
func LoadFile() (*FileConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &FileConfig{}, nil
	}
	return LoadFileFrom(filepath.Join(home, ".lexctl", "config.yaml"))
}

// LoadFileFrom reads a config file at an explicit path.
func LoadFileFrom(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

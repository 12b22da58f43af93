package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DESKTOP_MATRIX_LOG_LEVEL.
const EnvPrefix = "DESKTOP_MATRIX"

// Config stores all configuration of the application.
// The values are read by viper from flags, environment, or a config file.
type Config struct {
	Format   string            `mapstructure:"format"`
	Pretty   bool              `mapstructure:"pretty"`
	LogLevel string            `mapstructure:"log_level"`
	Roles    map[string]string `mapstructure:"roles"` // extra sub-role links, child: parent
	Serve    ServeConfig       `mapstructure:"serve"`
	Suite    SuiteConfig       `mapstructure:"suite"`
}

// ServeConfig holds MCP server settings.
type ServeConfig struct {
	Transport string        `mapstructure:"transport"`
	Port      int           `mapstructure:"port"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// SuiteConfig holds data-driven run settings.
type SuiteConfig struct {
	StopOnError bool `mapstructure:"stop_on_error"`
	Limit       int  `mapstructure:"limit"`
	Parallel    int  `mapstructure:"parallel"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"format":        "format",
	"pretty":        "pretty",
	"log-level":     "log_level",
	"transport":     "serve.transport",
	"port":          "serve.port",
	"cache-ttl":     "serve.cache_ttl",
	"stop-on-error": "suite.stop_on_error",
	"limit":         "suite.limit",
	"parallel":      "suite.parallel",
}

// Load reads configuration. configPath may be empty, in which case
// config.yaml is looked up in the working directory and
// $HOME/.config/desktop-matrix; a missing file is not an error. Flags that
// were set explicitly take precedence over everything else.
func Load(configPath string, flags ...*pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/desktop-matrix")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("format", "yaml")
	v.SetDefault("pretty", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("serve.transport", "stdio")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.cache_ttl", 500*time.Millisecond)
	v.SetDefault("suite.stop_on_error", false)
	v.SetDefault("suite.limit", 0)
	v.SetDefault("suite.parallel", 1)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, fs := range flags {
		if fs == nil {
			continue
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}

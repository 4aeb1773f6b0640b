// Package config loads LumenDB's ambient configuration: everything the
// protocol spec itself is silent on (GC cadence, logging verbosity, bind
// host). Ported from the teacher's internal/config, same viper-based shape,
// trimmed of the teacher's Storage/Persistence sections (sharding and
// AOF/RDB are both out of scope here, see DESIGN.md).
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	GC     GCConfig     `mapstructure:"gc"`
	Log    LogConfig    `mapstructure:"log"`
}

// GCConfig controls the active-expiration background sweep (spec.md §4.7).
type GCConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Interval        time.Duration `mapstructure:"interval"`          // must stay <=1s per spec.md §4.2
	SamplesPerCheck int           `mapstructure:"samples_per_check"` // bounded batch size per sweep
}

// ServerConfig holds the network bind settings. Port is the config-file/
// env-var fallback only — spec.md §6 requires the actual listening port to
// come from the process's single positional argument, which always wins;
// see cmd/server/main.go.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LogConfig controls zap verbosity/encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads configuration from an optional config.yaml in path, overridden
// by LUMENDB_-prefixed environment variables, falling back to defaults when
// neither is present.
func Load(path string) (*Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WatchForChanges invokes onChange with the freshly reloaded Config every
// time the config file backing path changes on disk. The watch itself is
// driven by fsnotify through viper's own WatchConfig/OnConfigChange API —
// used by cmd/server/main.go to hot-reload the log level without a restart.
func WatchForChanges(path string, onChange func(*Config)) {
	v := newViper(path)
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err == nil {
			onChange(&cfg)
		}
	})
	v.WatchConfig()
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("LUMENDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// setDefaults populates v with fallback values used when neither a config
// file nor an environment variable supplies them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "6380")

	v.SetDefault("gc.enabled", true)
	v.SetDefault("gc.interval", "100ms")
	v.SetDefault("gc.samples_per_check", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

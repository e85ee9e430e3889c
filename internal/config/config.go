// Package config loads tabzero's settings from an optional .tabzero.yaml,
// a .env file and TABZERO_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/nikbrunner/tabzero/internal/remote"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/wallpaper"
)

// Sync backends.
const (
	SyncNone   = ""
	SyncWebDAV = "webdav"
	SyncRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved application configuration.
type Config struct {
	DataDir string
	Storage string

	LogLevel  string
	LogPretty bool

	Sync      SyncConfig
	Wallpaper WallpaperConfig

	// File is the config file that was read, if any.
	File string
}

// SyncConfig selects and configures the remote blob store.
type SyncConfig struct {
	Backend string
	Device  string
	Timeout time.Duration
	WebDAV  remote.WebDAVConfig
	Redis   remote.RedisConfig
}

// WallpaperConfig configures wallpaper preloading.
type WallpaperConfig struct {
	Timeout time.Duration
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile, when set, is read instead of searching for .tabzero.yaml.
	ConfigFile string
	// EnvFile defaults to ".env". A missing file is not an error.
	EnvFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "~/.config/tabzero")
	v.SetDefault("storage", storage.BackendJSON)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)
	v.SetDefault("sync.backend", SyncNone)
	v.SetDefault("sync.device", remote.DefaultDevice)
	v.SetDefault("sync.timeout", 30*time.Second)
	v.SetDefault("webdav.url", "")
	v.SetDefault("webdav.username", "")
	v.SetDefault("webdav.password", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tabzero:")
	v.SetDefault("wallpaper.timeout", wallpaper.LoadTimeout)
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TABZERO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		path, err := homedir.Expand(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".tabzero") // .yaml is implicit
		v.SetConfigType("yaml")
		if override := os.Getenv("TABZERO_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("expand data_dir: %w", err)
	}

	cfg := &Config{
		DataDir:   dataDir,
		Storage:   strings.ToLower(v.GetString("storage")),
		LogLevel:  v.GetString("log.level"),
		LogPretty: v.GetBool("log.pretty"),
		Sync: SyncConfig{
			Backend: strings.ToLower(v.GetString("sync.backend")),
			Device:  v.GetString("sync.device"),
			Timeout: v.GetDuration("sync.timeout"),
			WebDAV: remote.WebDAVConfig{
				URL:      v.GetString("webdav.url"),
				Username: v.GetString("webdav.username"),
				Password: v.GetString("webdav.password"),
				Timeout:  v.GetDuration("sync.timeout"),
			},
			Redis: remote.RedisConfig{
				Addr:        v.GetString("redis.addr"),
				Password:    v.GetString("redis.password"),
				DB:          v.GetInt("redis.db"),
				DialTimeout: 5 * time.Second,
				KeyPrefix:   v.GetString("redis.prefix"),
			},
		},
		Wallpaper: WallpaperConfig{Timeout: v.GetDuration("wallpaper.timeout")},
		File:      v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the backends are known and configured.
func (c *Config) Validate() error {
	switch c.Storage {
	case storage.BackendJSON, storage.BackendSQLite, storage.BackendDiskv, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}

	switch c.Sync.Backend {
	case SyncNone:
	case SyncWebDAV:
		if c.Sync.WebDAV.URL == "" {
			return fmt.Errorf("%w: webdav sync needs webdav.url", ErrInvalidConfig)
		}
	case SyncRedis:
		if c.Sync.Redis.Addr == "" {
			return fmt.Errorf("%w: redis sync needs redis.addr", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown sync backend %q", ErrInvalidConfig, c.Sync.Backend)
	}
	return nil
}

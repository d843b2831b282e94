package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendSQLite  = "sqlite"
	BackendRedis   = "redis"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// RedisConfig holds connection settings for the Redis storage backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// KeyringConfig holds settings for the OS keyring storage backend.
type KeyringConfig struct {
	// Service is the keyring service name entries are filed under.
	Service string `mapstructure:"service" yaml:"service"`

	// FileDir is used by the encrypted-file fallback backend.
	FileDir string `mapstructure:"file_dir" yaml:"file_dir"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	// Backend is one of sqlite, redis, keyring or memory.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// Namespace is prepended to every storage key.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
	Keyring KeyringConfig `mapstructure:"keyring" yaml:"keyring"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// SessionConfig tunes session behaviour.
type SessionConfig struct {
	// KeepPreferencesOnLogout limits logout to removing the session keys,
	// leaving UI preferences such as dark mode in place.
	KeepPreferencesOnLogout bool `mapstructure:"keep_preferences_on_logout" yaml:"keep_preferences_on_logout"`
}

// AuthConfig holds password hashing settings.
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
}

// configDir returns ~/.config/project-dashboard, or "." when the home
// directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "project-dashboard")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/project-dashboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			Path:      filepath.Join(configDir(), "dashboard.db"),
			Namespace: "techcorp_",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
			Keyring: KeyringConfig{
				Service: "project-dashboard",
				FileDir: filepath.Join(configDir(), "keyring"),
			},
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
	}
}

// setDefaults registers every default with v so missing keys resolve to
// sensible values and environment overrides are visible to Unmarshal.
func setDefaults(v *viper.Viper, cfg *AppConfig) {
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.namespace", cfg.Storage.Namespace)
	v.SetDefault("storage.redis.addr", cfg.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", cfg.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", cfg.Storage.Redis.DB)
	v.SetDefault("storage.keyring.service", cfg.Storage.Keyring.Service)
	v.SetDefault("storage.keyring.file_dir", cfg.Storage.Keyring.FileDir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("session.keep_preferences_on_logout", cfg.Session.KeepPreferencesOnLogout)
	v.SetDefault("auth.bcrypt_cost", cfg.Auth.BcryptCost)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values may be overridden with DASHBOARD_* environment variables, e.g.
// DASHBOARD_STORAGE_BACKEND=memory. A missing file yields the defaults, and
// keys present but left blank fall back to them as well.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("dashboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := mergo.Merge(cfg, DefaultAppConfig()); err != nil {
		return nil, fmt.Errorf("merging config defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the fields LoadConfig cannot default on its own.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.addr is required for the redis backend")
		}
	case BackendKeyring:
		if c.Storage.Keyring.Service == "" {
			return errors.New("storage.keyring.service is required for the keyring backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("session", cfg.Session)
	v.Set("auth", cfg.Auth)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

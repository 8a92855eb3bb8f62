package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user configuration, loaded from
// ~/.config/shadegraph/config.toml. Every field has a working default;
// a missing or unreadable file yields the defaults silently.
type Config struct {
	// Libraries are extra node-definition library files loaded after the
	// embedded standard library.
	Libraries []string `toml:"libraries"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file" (default) or "redis".
	Backend string `toml:"backend"`

	// RedisAddr is the redis host:port, used when Backend is "redis".
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	// Addr is the listen address for the serve command.
	Addr string `toml:"addr"`

	// MongoURI enables the Mongo-backed document store when set.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database name for the Mongo store.
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{
			Addr:          ":8080",
			MongoDatabase: appName,
		},
	}
}

// LoadConfig reads the config file, falling back to defaults when the
// file is absent or malformed.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		// A broken config should not make the editor unusable.
		return DefaultConfig()
	}
	return cfg
}

// configPath returns ~/.config/shadegraph/config.toml, honoring
// XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

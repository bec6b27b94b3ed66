// Package config loads this service's configuration from dely.toml,
// overlaid by DELY_-prefixed environment variables, using koanf v2.
// Grounded on the cartographus example pack member's layered
// defaults/file/env koanf wiring, scaled down to this service's five
// setting groups.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/kuraya-dely/dely/internal/kurrentdb"
	"github.com/kuraya-dely/dely/internal/searchindex"
)

// ConfigPathEnvVar overrides the default "dely.toml" lookup path.
const ConfigPathEnvVar = "DELY_CONFIG_PATH"

// envPrefix and envSeparator fix the environment overlay shape:
// DELY_EVENTSTORE_HOST -> eventstore.host. Every koanf leaf key in
// this package is a single word so the separator-to-dot translation
// stays unambiguous.
const (
	envPrefix    = "DELY_"
	envSeparator = "_"
)

// EventStoreConfig names the KurrentDB/EventStoreDB connection, shaped
// to feed kurrentdb.Config directly.
type EventStoreConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Insecure bool   `koanf:"insecure"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// AsKurrentDB converts to the shape internal/kurrentdb expects.
func (c EventStoreConfig) AsKurrentDB() *kurrentdb.Config {
	return &kurrentdb.Config{
		Host:     c.Host,
		Port:     c.Port,
		Insecure: c.Insecure,
		Username: c.Username,
		Password: c.Password,
	}
}

// MeilisearchConfig names the Meilisearch connection.
type MeilisearchConfig struct {
	Host   string `koanf:"host"`
	APIKey string `koanf:"apikey"`
}

// AsSearchIndex converts to the shape internal/searchindex expects.
func (c MeilisearchConfig) AsSearchIndex() searchindex.Config {
	return searchindex.Config{Host: c.Host, APIKey: c.APIKey}
}

// LoggerConfig names the logging level.
type LoggerConfig struct {
	Level string `koanf:"level"`
}

// ServerConfig names the operational HTTP listener address.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// IDGenConfig names this instance's Snowflake datacenter/worker
// identifiers; each deployed instance must be given a distinct pair.
type IDGenConfig struct {
	DatacenterID int `koanf:"datacenterid"`
	WorkerID     int `koanf:"workerid"`
}

// Config is the fully resolved, layered configuration.
type Config struct {
	EventStore  EventStoreConfig  `koanf:"eventstore"`
	Meilisearch MeilisearchConfig `koanf:"meilisearch"`
	Logger      LoggerConfig      `koanf:"logger"`
	Server      ServerConfig      `koanf:"server"`
	IDGen       IDGenConfig       `koanf:"idgen"`
}

func defaults() *Config {
	return &Config{
		EventStore:  EventStoreConfig{Host: "localhost", Port: 2113, Insecure: true},
		Meilisearch: MeilisearchConfig{Host: "http://localhost:7700"},
		Logger:      LoggerConfig{Level: "info"},
		Server:      ServerConfig{Addr: ":8080"},
		IDGen:       IDGenConfig{DatacenterID: 1, WorkerID: 1},
	}
}

// Load reads dely.toml (or DELY_CONFIG_PATH, if set) and overlays
// DELY_-prefixed environment variables on top, following
// defaults < file < env precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	path := configPath()
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		trimmed := strings.TrimPrefix(key, envPrefix)
		return strings.ToLower(strings.ReplaceAll(trimmed, envSeparator, "."))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config: loading environment overlay: %w", err)
	}

	resolved := &Config{}
	if err := k.Unmarshal("", resolved); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return resolved, nil
}

func configPath() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat("dely.toml"); err == nil {
		return "dely.toml"
	}
	return ""
}

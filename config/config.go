package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/brensch/hypersonic/agent"
)

// EnvPrefix is prepended to every environment override, e.g.
// HYPERSONIC_AGENT_INITIAL_RANGE.
const EnvPrefix = "HYPERSONIC"

const (
	FeedStdio     = "stdio"
	FeedWebsocket = "websocket"
)

type Config struct {
	Agent  AgentConfig  `mapstructure:"agent"`
	Log    LogConfig    `mapstructure:"log"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Record RecordConfig `mapstructure:"record"`
}

type AgentConfig struct {
	InitialRange    int `mapstructure:"initial_range"`
	InitialCapacity int `mapstructure:"initial_capacity"`
	TargetLimit     int `mapstructure:"target_limit"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"` // debug | info | warn | error
	Development bool   `mapstructure:"development"`
}

type FeedConfig struct {
	Mode string `mapstructure:"mode"` // stdio | websocket
	URL  string `mapstructure:"url"`
}

type RecordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Controller converts the agent section into the controller's config.
func (c AgentConfig) Controller() agent.Config {
	return agent.Config{
		InitialRange:    c.InitialRange,
		InitialCapacity: c.InitialCapacity,
		TargetLimit:     c.TargetLimit,
	}
}

// Load reads config from the given YAML file path. An empty path uses
// defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := agent.DefaultConfig()
	v.SetDefault("agent.initial_range", def.InitialRange)
	v.SetDefault("agent.initial_capacity", def.InitialCapacity)
	v.SetDefault("agent.target_limit", def.TargetLimit)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("feed.mode", FeedStdio)
	v.SetDefault("feed.url", "")
	v.SetDefault("record.enabled", false)
	v.SetDefault("record.dir", "data/ticks")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Agent.InitialRange < 1 {
		errs = append(errs, fmt.Errorf("agent.initial_range must be at least 1, got %d", c.Agent.InitialRange))
	}
	if c.Agent.InitialCapacity < 1 {
		errs = append(errs, fmt.Errorf("agent.initial_capacity must be at least 1, got %d", c.Agent.InitialCapacity))
	}
	if c.Agent.TargetLimit < 1 {
		errs = append(errs, fmt.Errorf("agent.target_limit must be at least 1, got %d", c.Agent.TargetLimit))
	}
	switch c.Feed.Mode {
	case FeedStdio:
	case FeedWebsocket:
		if c.Feed.URL == "" {
			errs = append(errs, errors.New("feed.url is required in websocket mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("feed.mode must be %q or %q, got %q", FeedStdio, FeedWebsocket, c.Feed.Mode))
	}
	if c.Record.Enabled && c.Record.Dir == "" {
		errs = append(errs, errors.New("record.dir is required when recording"))
	}
	return errors.Join(errs...)
}

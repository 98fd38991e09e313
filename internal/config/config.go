// Package config provides configuration management for the simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Kite       KiteConfig       `mapstructure:"kite"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	DefaultAccount  string        `mapstructure:"default_account"`
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// MarketDataConfig holds quote source and price simulator configuration.
type MarketDataConfig struct {
	QuoteTimeout      time.Duration `mapstructure:"quote_timeout"`
	YahooEnabled      bool          `mapstructure:"yahoo_enabled"`
	KiteEnabled       bool          `mapstructure:"kite_enabled"`
	SimulatorEnabled  bool          `mapstructure:"simulator_enabled"`
	SimulatorInterval time.Duration `mapstructure:"simulator_interval"`
}

// EngineConfig holds execution engine configuration.
type EngineConfig struct {
	DepthLevels int   `mapstructure:"depth_levels"`
	FillSeed    int64 `mapstructure:"fill_seed"` // 0 means time-seeded
}

// KiteConfig holds Zerodha Kite Connect credentials. Used for live quotes
// and order mirroring when kite_enabled is set.
type KiteConfig struct {
	APIKey      string `mapstructure:"api_key"`
	AccessToken string `mapstructure:"access_token"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// Load loads configuration from the given file (optional) and from
// TRADESIM_* environment variables. A missing config file is not an error;
// defaults apply for anything unset.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TRADESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/tradesim")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.default_account", "default")

	v.SetDefault("database.path", "tradesim.db")

	v.SetDefault("market_data.quote_timeout", 3*time.Second)
	v.SetDefault("market_data.yahoo_enabled", true)
	v.SetDefault("market_data.kite_enabled", false)
	v.SetDefault("market_data.simulator_enabled", true)
	v.SetDefault("market_data.simulator_interval", 8*time.Second)

	v.SetDefault("engine.depth_levels", 5)
	v.SetDefault("engine.fill_seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", "logs/tradesim.log")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Engine.DepthLevels <= 0 {
		return fmt.Errorf("engine.depth_levels must be positive")
	}
	if c.MarketData.SimulatorEnabled && c.MarketData.SimulatorInterval <= 0 {
		return fmt.Errorf("market_data.simulator_interval must be positive")
	}
	if c.MarketData.KiteEnabled && c.Kite.APIKey == "" {
		return fmt.Errorf("kite.api_key is required when market_data.kite_enabled is set")
	}
	return nil
}

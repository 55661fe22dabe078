package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Quote sources understood by the service.
const (
	SourceYahoo     = "yahoo"
	SourceFinanceGo = "financego"
)

type Server struct {
	Host               string `mapstructure:"host"`
	Port               string `mapstructure:"port"`
	Debug              bool   `mapstructure:"debug"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec"`
}

type Quotes struct {
	Source     string `mapstructure:"source"` // yahoo | financego
	BaseURL    string `mapstructure:"base_url"`
	UserAgent  string `mapstructure:"user_agent"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
	// Crumb pins a Yahoo crumb and skips the cookie handshake.
	Crumb string `mapstructure:"crumb"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server Server `mapstructure:"server"`
	Quotes Quotes `mapstructure:"quotes"`
	Log    Log    `mapstructure:"log"`
}

// EnvPrefix prefixes every environment override, e.g. STOCKINSIGHT_SERVER_PORT.
const EnvPrefix = "STOCKINSIGHT"

func Default() Config {
	return Config{
		Server: Server{Host: "", Port: "5000", ShutdownTimeoutSec: 5},
		Quotes: Quotes{
			Source:     SourceYahoo,
			BaseURL:    "https://query1.finance.yahoo.com",
			TimeoutSec: 15,
		},
		Log: Log{Level: "info", Pretty: false},
	}
}

// Addr is the listen address.
func (s Server) Addr() string { return s.Host + ":" + s.Port }

// Load reads config from path (JSON, YAML or TOML, by extension); a named
// path that does not exist is an error. If path is empty it falls back to
// ./config.json or ./config.yaml when present, and to defaults otherwise. A .env file in the working directory is loaded first;
// environment variables override file values.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, candidate := range []string{"config.json", "config.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	} else if _, err := os.Stat(path); err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Default(), fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	switch c.Quotes.Source {
	case SourceYahoo, SourceFinanceGo:
	default:
		return fmt.Errorf("config: unknown quotes.source %q", c.Quotes.Source)
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("config: server.port is empty")
	}
	if c.Quotes.Source == SourceYahoo && c.Quotes.BaseURL == "" {
		return errors.New("config: quotes.base_url is empty")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.debug", d.Server.Debug)
	v.SetDefault("server.shutdown_timeout_sec", d.Server.ShutdownTimeoutSec)

	v.SetDefault("quotes.source", d.Quotes.Source)
	v.SetDefault("quotes.base_url", d.Quotes.BaseURL)
	v.SetDefault("quotes.user_agent", d.Quotes.UserAgent)
	v.SetDefault("quotes.timeout_sec", d.Quotes.TimeoutSec)
	v.SetDefault("quotes.crumb", d.Quotes.Crumb)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
}

// applyEnv honours the unprefixed variables hosting platforms set.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Server.Debug = true
		case "0", "false", "no", "n":
			cfg.Server.Debug = false
		}
	}
	if cfg.Server.Debug {
		cfg.Log.Level = "debug"
		cfg.Log.Pretty = true
	}
}

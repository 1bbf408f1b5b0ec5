package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bodul/xwplayer/puzzle"
	"github.com/bodul/xwplayer/source"
)

// Config is the server configuration. It is read from an optional TOML file
// and then overridden by environment variables.
type Config struct {
	Addr            string              `toml:"addr"`
	Alphabet        string              `toml:"alphabet"`
	ClockInterval   duration            `toml:"clock_interval"`
	GenerateTimeout duration            `toml:"generate_timeout"`
	Gemini          source.GeminiConfig `toml:"gemini"`
	MySQL           struct {
		DSN string `toml:"dsn"`
	} `toml:"mysql"`
	Limits struct {
		CreatePerMinute int `toml:"create_per_minute"`
		InputPerSecond  int `toml:"input_per_second"`
	} `toml:"limits"`
}

// duration decodes TOML strings such as "1s" or "90s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	var c Config
	c.Addr = ":8080"
	c.Alphabet = puzzle.Arabic.Name
	c.ClockInterval.Duration = time.Second
	c.GenerateTimeout.Duration = 90 * time.Second
	c.Limits.CreatePerMinute = 5
	c.Limits.InputPerSecond = 60
	return c
}

// LoadConfig reads filename, if not empty, over the defaults and applies
// environment overrides.
func LoadConfig(filename string) (Config, error) {
	return loadConfig(filename, os.Getenv)
}

func loadConfig(filename string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", filename, err)
		}
	}
	cfg.applyEnv(getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v := getenv("CROSSWORD_ALPHABET"); v != "" {
		c.Alphabet = v
	}
	if v := getenv("GCP_PROJECT_ID"); v != "" {
		c.Gemini.Project = v
	}
	if v := getenv("GCP_REGION"); v != "" {
		c.Gemini.Region = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := getenv("MYSQL_DSN"); v != "" {
		c.MySQL.DSN = v
	}
}

// Options resolves the settings the HTTP server needs.
func (c Config) Options() (Options, error) {
	alphabet, err := puzzle.LookupAlphabet(c.Alphabet)
	if err != nil {
		return Options{}, err
	}
	if c.ClockInterval.Duration <= 0 {
		return Options{}, fmt.Errorf("clock_interval must be positive, got %s", c.ClockInterval.Duration)
	}
	return Options{
		Alphabet:        alphabet,
		ClockInterval:   c.ClockInterval.Duration,
		GenerateTimeout: c.GenerateTimeout.Duration,
		CreatePerMinute: c.Limits.CreatePerMinute,
		InputPerSecond:  c.Limits.InputPerSecond,
	}, nil
}

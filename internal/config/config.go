// Package config loads the TOML configuration shared by the custompaint
// binaries.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the binary configuration.
//
// Reference config:
//
//	listen = ":8080"
//	platform = "web"
//	pixel_ratio = 2.0
//	handshake_delay = "16ms"
//
//	[fetch]
//	timeout = "30s"
//	max_tries = 3
//
//	[log]
//	level = "debug"
type Config struct {
	Listen         string   `toml:"listen"`
	Platform       string   `toml:"platform"`
	PixelRatio     float64  `toml:"pixel_ratio"`
	HandshakeDelay Duration `toml:"handshake_delay"`
	Fetch          Fetch    `toml:"fetch"`
	Log            Log      `toml:"log"`
}

// Fetch configures network drawable loading.
type Fetch struct {
	Timeout  Duration `toml:"timeout"`
	MaxTries uint     `toml:"max_tries"`
}

// Log configures the process logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration decoded from a string such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText is the method called by TOML when decoding a value.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns the configuration used for absent keys.
func Default() Config {
	return Config{
		Listen:         ":8080",
		Platform:       "web",
		PixelRatio:     1,
		HandshakeDelay: Duration{16 * time.Millisecond},
		Fetch: Fetch{
			Timeout:  Duration{time.Minute},
			MaxTries: 3,
		},
		Log: Log{Level: "info"},
	}
}

// LoadFile reads the configuration at path. Keys that are not recognized
// are an error.
func LoadFile(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, c.check(md)
}

// Load decodes the configuration in data.
func Load(data string) (Config, error) {
	c := Default()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, c.check(md)
}

func (c Config) check(md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: undecoded keys: %v", undecoded)
	}
	if !(c.PixelRatio > 0) {
		return fmt.Errorf("config: pixel_ratio must be positive, got %v", c.PixelRatio)
	}
	if c.Fetch.MaxTries == 0 {
		return fmt.Errorf("config: fetch.max_tries must be at least 1")
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.Log.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

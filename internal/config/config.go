// Package config resolves runtime settings from defaults, an optional .env
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/fetchlist/internal/fetch"
)

const (
	EnvURL   = "FETCHLIST_URL"
	EnvTheme = "FETCHLIST_THEME"
	EnvLog   = "FETCHLIST_LOG"
	EnvColor = "NO_COLOR"
)

type Config struct {
	Endpoint string
	Theme    string
	LogFile  string // empty: diagnostics are discarded
	NoColor  bool
}

func Default() Config {
	return Config{Endpoint: fetch.DefaultEndpoint, Theme: "classic"}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then applies the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	c := Default()
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLog)); v != "" {
		c.LogFile = v
	}
	if _, ok := os.LookupEnv(EnvColor); ok {
		c.NoColor = true
	}
	return c, nil
}

// Validate checks the endpoint is an absolute http(s) URL.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint: missing host in %q", c.Endpoint)
	}
	return nil
}

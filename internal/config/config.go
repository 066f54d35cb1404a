package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"noebook-backend/internal/components/chrono"
	"noebook-backend/internal/components/configutil"
	"noebook-backend/internal/components/telemetry"
	"noebook-backend/internal/scrapers/noe"
)

const (
	env_username = "NOE_USERNAME"
	env_password = "NOE_PASSWORD"
	env_base_url = "NOE_BASE_URL"
)

type Config struct {
	BaseUrl        string `json:"base_url"`
	LocationPath   string `json:"location_path"`
	LocationId     string `json:"location_id"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// CloudflareBypass wraps the transport with browser-like TLS and headers.
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Debug            bool   `json:"debug"`
}

// String never includes the password.
func (c Config) String() string {
	password := ""
	if c.Password != "" {
		password = "<redacted>"
	}
	return fmt.Sprintf(
		"Config{base_url=%s location_path=%s location_id=%s timeout_seconds=%d cloudflare_bypass=%t username=%s password=%s debug=%t}",
		c.BaseUrl, c.LocationPath, c.LocationId, c.TimeoutSeconds,
		c.CloudflareBypass, c.Username, password, c.Debug,
	)
}

func (c Config) GoString() string {
	return c.String()
}

func (c Config) Validate() error {
	var errlist []error
	if c.BaseUrl == "" {
		errlist = append(errlist, fmt.Errorf("base_url is required"))
	} else if u, err := url.Parse(c.BaseUrl); err != nil || u.Scheme == "" || u.Host == "" {
		errlist = append(errlist, fmt.Errorf("base_url '%s' must be an absolute url", c.BaseUrl))
	}
	if !strings.HasPrefix(c.LocationPath, "/") {
		errlist = append(errlist, fmt.Errorf("location_path '%s' must start with '/'", c.LocationPath))
	}
	if c.LocationId == "" {
		errlist = append(errlist, fmt.Errorf("location_id is required"))
	}
	if c.TimeoutSeconds < 0 {
		errlist = append(errlist, fmt.Errorf("timeout_seconds must not be negative"))
	}
	if c.Username == "" {
		errlist = append(errlist, fmt.Errorf("username is required (set %s or config username)", env_username))
	}
	if c.Password == "" {
		errlist = append(errlist, fmt.Errorf("password is required (set %s or config password)", env_password))
	}
	return errors.Join(errlist...)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(env_username); v != "" {
		c.Username = v
	}
	if v := getenv(env_password); v != "" {
		c.Password = v
	}
	if v := getenv(env_base_url); v != "" {
		c.BaseUrl = v
	}
}

// Load reads the json5 config at path (and its .local override), then applies the
// NOE_* environment variables and validates the result. A missing config file is
// fine as long as the environment fills in the rest.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.applyEnv(getenv)

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ClientOptions builds the options of a booking client from the config.
func (c Config) ClientOptions(tel telemetry.API) (noe.ClientOptions, error) {
	clock, err := chrono.NewStandardImpl()
	if err != nil {
		return noe.ClientOptions{}, err
	}
	return noe.ClientOptions{
		BaseUrl:          c.BaseUrl,
		LocationPath:     c.LocationPath,
		LocationId:       c.LocationId,
		Username:         c.Username,
		Password:         c.Password,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		CloudflareBypass: c.CloudflareBypass,
		Time:             clock,
		Tel:              tel,
	}, nil
}

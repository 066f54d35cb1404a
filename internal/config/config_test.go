package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"noebook-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
	// booking site
	base_url: "https://booking.example.com",
	location_path: "/locations/noe-valley/",
	location_id: "12",
	timeout_seconds: 10,
	username: "member@example.com",
	password: "from-file",
}`

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.json5", sampleConfig)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)
	require.Equal(t, "https://booking.example.com", cfg.BaseUrl)
	require.Equal(t, "12", cfg.LocationId)
	require.Equal(t, 10, cfg.TimeoutSeconds)
	require.Equal(t, "from-file", cfg.Password)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.json5", sampleConfig)

	cfg, err := load(path, env(map[string]string{
		env_username: "other@example.com",
		env_password: "from-env",
		env_base_url: "http://127.0.0.1:8080",
	}))
	require.NoError(t, err)
	require.Equal(t, "other@example.com", cfg.Username)
	require.Equal(t, "from-env", cfg.Password)
	require.Equal(t, "http://127.0.0.1:8080", cfg.BaseUrl)
	require.Equal(t, "/locations/noe-valley/", cfg.LocationPath)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")

	_, err := load(path, env(map[string]string{
		env_username: "member@example.com",
		env_password: "secret",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "base_url")
	require.Contains(t, err.Error(), "location_id")
	require.NotContains(t, err.Error(), "username")
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeConfig(t, "config.json5", "{ base_url: ")
	_, err := load(path, env(nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	valid := Config{
		BaseUrl:      "https://booking.example.com",
		LocationPath: "/locations/noe-valley/",
		LocationId:   "12",
		Username:     "member@example.com",
		Password:     "secret",
	}
	require.NoError(t, valid.Validate())

	relative := valid
	relative.BaseUrl = "booking.example.com"
	require.Error(t, relative.Validate())

	badPath := valid
	badPath.LocationPath = "locations/noe-valley"
	require.Error(t, badPath.Validate())

	negative := valid
	negative.TimeoutSeconds = -1
	require.Error(t, negative.Validate())

	noPassword := valid
	noPassword.Password = ""
	err := noPassword.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), env_password)
}

func TestStringRedactsPassword(t *testing.T) {
	cfg := Config{Username: "member@example.com", Password: "hunter2"}
	for _, out := range []string{
		cfg.String(),
		fmt.Sprint(cfg),
		fmt.Sprintf("%v", cfg),
		fmt.Sprintf("%+v", cfg),
		fmt.Sprintf("%#v", cfg),
	} {
		require.False(t, strings.Contains(out, "hunter2"), out)
	}
	require.Contains(t, cfg.String(), "member@example.com")
}

func TestClientOptions(t *testing.T) {
	cfg := Config{
		BaseUrl:        "https://booking.example.com",
		LocationPath:   "/locations/noe-valley/",
		LocationId:     "12",
		TimeoutSeconds: 15,
		Username:       "member@example.com",
		Password:       "secret",
	}
	opts, err := cfg.ClientOptions(telemetry.SlogAPI{})
	require.NoError(t, err)
	require.Equal(t, 15*time.Second, opts.Timeout)
	require.Equal(t, "12", opts.LocationId)
	require.NotNil(t, opts.Time)
	require.Equal(t, "America/Los_Angeles", opts.Time.Location().String())
}

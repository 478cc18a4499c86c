package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "codeslabs.db", cfg.SQLitePath)
	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, DefaultAdminKey, cfg.AdminKey)
	assert.Equal(t, "codes.labs.rc@gmail.com", cfg.Mail.To)
	assert.Equal(t, "", cfg.Mail.Addr)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("APP_ADDR: \":9090\"\nSQLITE_PATH: from-file.db\nAPI_BASE_URL: https://api.codes-labs.dev/api/\n"), 0o600))
	t.Setenv(KeySQLitePath, "from-env.db")
	t.Setenv(KeyLogFormat, "JSON")

	v, err := NewViper(file)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "from-env.db", cfg.SQLitePath)
	assert.Equal(t, "https://api.codes-labs.dev/api", cfg.APIBaseURL)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestMissingExplicitFileFails(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())

	cases := map[string]string{
		KeyLogLevel:  "verbose",
		KeyLogFormat: "xml",
		KeyAdminKey:  "   ",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			v, err := NewViper("")
			require.NoError(t, err)
			v.Set(key, value)
			_, err = Load(v)
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "test-key",
		"port": 9090,
		"cache_size": 64,
		"request_timeout": 120,
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, 120, cfg.RequestTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfigFile(t, `{"port": 3000}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Empty(t, cfg.APIKey)
	assert.Zero(t, cfg.CacheSize)
}

func TestLoadErrors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Load(writeConfigFile(t, `{"port": `))
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "7070")

	cfg := FromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 7070, cfg.Port)
}

func TestFromEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "not-a-port")

	cfg := FromEnv()

	assert.Zero(t, cfg.Port)
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "file-key", Port: 9090, CacheSize: 16, RequestTimeout: 5}
	cfg.ApplyDefaults()

	assert.Equal(t, "file-key", cfg.APIKey, "file value wins over environment")
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 5, cfg.RequestTimeout)
}

func TestApplyDefaultsEnvFallbackKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Port: 8080, CacheSize: 256, RequestTimeout: 60}, false},
		{"zero values", Config{}, false},
		{"port too high", Config{Port: 70000}, true},
		{"negative port", Config{Port: -1}, true},
		{"negative cache size", Config{CacheSize: -1}, true},
		{"negative timeout", Config{RequestTimeout: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app_secret: "secret"
storage:
  driver: memory
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.AppSecret)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, uint32(65536), cfg.Hasher.Memory)
	assert.Equal(t, 3, cfg.Tasks.Workers)
	assert.False(t, cfg.SMTP.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app_secret: "from-file"
storage:
  driver: memory
`)
	t.Setenv("APP_SECRET", "from-env")
	t.Setenv("PORT", "8080")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AppSecret)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"missing secret", "storage:\n  driver: memory\n"},
		{"postgres without dsn", "app_secret: s\nstorage:\n  driver: postgres\n"},
		{"unknown driver", "app_secret: s\nstorage:\n  driver: mongo\n"},
		{"smtp without host", "app_secret: s\nstorage:\n  driver: memory\nsmtp:\n  enabled: true\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv(envToken, "")
	t.Setenv(envServer, "")
	path := writeConfig(t, `
server = "https://hr.example.com"
token = "abc"
language = "fr-FR"
state_dir = "/tmp/bulkctl"
timeout = "5s"
log_level = "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com", cfg.Server)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, i18n.French, cfg.LanguageCode())
	assert.Equal(t, "/tmp/bulkctl", cfg.StateDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat, "unset keys keep their default")

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(envToken, "from-env")
	t.Setenv(envServer, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Server)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, i18n.Code(""), cfg.LanguageCode())

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv(envToken, "")
	t.Setenv(envServer, "")

	cases := map[string]string{
		"bad toml":     `server = `,
		"bad timeout":  `timeout = "soon"`,
		"zero timeout": `timeout = "0s"`,
		"bad language": `language = "it"`,
		"blank server": `server = " "`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

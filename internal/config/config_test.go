package config_test

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// Each test runs in its own directory so a stray .env is never picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)

	st, err := cfg.Style.StyleConfig()
	require.NoError(t, err)
	assert.Equal(t, composer.DefaultStyle(), st)
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, `
port: 9000
log_level: debug
read_timeout: 5s
style:
  size: 300
  error_correction: H
  foreground: "#112233"
  style: Rounded
`)
	t.Setenv("PORT", "9100")
	t.Setenv("QR_DEFAULT_STYLE", "Dots")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port, "environment overrides the file")
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)

	st, err := cfg.Style.StyleConfig()
	require.NoError(t, err)
	assert.Equal(t, 300, st.Size)
	assert.Equal(t, composer.ECHighest, st.ErrorCorrection)
	assert.Equal(t, color.RGBA{0x11, 0x22, 0x33, 255}, st.Foreground)
	assert.Equal(t, composer.StyleDots, st.Style)
}

func TestLoadDotEnv(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("QR_DEFAULT_EC=M\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("QR_DEFAULT_EC") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "M", cfg.Style.ErrorCorrection)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)

	for name, body := range map[string]string{
		"bad yaml":  "port: [",
		"bad size":  "style:\n  size: 20\n",
		"bad style": "style:\n  style: Neon\n",
		"bad color": "style:\n  foreground: red\n",
		"bad port":  "port: 70000\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

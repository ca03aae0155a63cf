package scanner_test

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/scanner"
)

func qrPNG(t *testing.T, text string) []byte {
	t.Helper()
	res, err := composer.Create(text, composer.DefaultStyle())
	require.NoError(t, err)
	data, err := composer.EncodePNG(res.Image)
	require.NoError(t, err)
	return data
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("blank image has no code", func(t *testing.T) {
		t.Parallel()
		img := image.NewGray(image.Rect(0, 0, 200, 200))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		_, err := scanner.Decode(img)
		assert.ErrorIs(t, err, scanner.ErrNotFound)
	})
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "code.png")
	require.NoError(t, os.WriteFile(path, qrPNG(t, "https://example.com"), 0o600))

	text, err := scanner.DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", text)

	_, err = scanner.DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, scanner.ErrInvalidImage)
}

// DecodeBytes tests swap TMPDIR and therefore cannot run in parallel.
func TestDecodeBytes(t *testing.T) {
	t.Run("decodes and removes the temp file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TMPDIR", dir)

		text, err := scanner.DecodeBytes(qrPNG(t, "scan me"), ".png")
		require.NoError(t, err)
		assert.Equal(t, "scan me", text)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("removes the temp file when decoding fails", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TMPDIR", dir)

		_, err := scanner.DecodeBytes([]byte("not an image"), ".jpg")
		require.ErrorIs(t, err, scanner.ErrInvalidImage)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unsafe extension falls back to png", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TMPDIR", dir)

		text, err := scanner.DecodeBytes(qrPNG(t, "ext"), "/../x")
		require.NoError(t, err)
		assert.Equal(t, "ext", text)
	})
}

package composer_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/scanner"
)

func TestGenerateAnimated(t *testing.T) {
	t.Parallel()

	t.Run("ten frames at 36 degree steps", func(t *testing.T) {
		t.Parallel()
		cfg := composer.DefaultStyle()
		frames, warnings, err := composer.GenerateAnimated("spin", cfg, 10)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.Len(t, frames, 10)

		still, err := composer.Create("spin", cfg)
		require.NoError(t, err)

		for i, f := range frames {
			assert.Equal(t, i, f.Index)
			assert.InDelta(t, float64(i*36), f.Angle, 1e-9)
		}
		assert.Equal(t, still.Image.Bounds(), frames[0].Image.Bounds(), "frame 0 is unrotated")
		assert.Equal(t, still.Image.Pix, frames[0].Image.Pix)
		assert.Greater(t, frames[1].Image.Bounds().Dx(), still.Image.Bounds().Dx(), "rotation expands the canvas")
	})

	t.Run("quarter turns keep the canvas and stay decodable", func(t *testing.T) {
		t.Parallel()
		cfg := composer.DefaultStyle()
		frames, _, err := composer.GenerateAnimated("spin", cfg, 4)
		require.NoError(t, err)

		still := frames[0].Image.Bounds()
		for _, f := range frames[1:] {
			assert.Equal(t, still.Dx(), f.Image.Bounds().Dx(), "frame %d", f.Index)
			assert.Equal(t, still.Dy(), f.Image.Bounds().Dy(), "frame %d", f.Index)

			text, err := scanner.Decode(f.Image)
			require.NoError(t, err, "frame %d", f.Index)
			assert.Equal(t, "spin", text)
		}
	})

	t.Run("rotated corners are transparent", func(t *testing.T) {
		t.Parallel()
		frames, _, err := composer.GenerateAnimated("spin", composer.DefaultStyle(), 8)
		require.NoError(t, err)
		assert.Zero(t, frames[1].Image.NRGBAAt(0, 0).A, "45 degree frame leaves its corners empty")
	})

	t.Run("default frame count", func(t *testing.T) {
		t.Parallel()
		frames, _, err := composer.GenerateAnimated("spin", composer.DefaultStyle(), 0)
		require.NoError(t, err)
		assert.Len(t, frames, composer.DefaultFrameCount)
	})

	t.Run("logo warning is reported once", func(t *testing.T) {
		t.Parallel()
		cfg := composer.DefaultStyle()
		cfg.Logo = []byte("nope")
		frames, warnings, err := composer.GenerateAnimated("spin", cfg, 4)
		require.NoError(t, err)
		assert.Len(t, frames, 4)
		assert.Len(t, warnings, 1)
	})

	t.Run("style errors propagate", func(t *testing.T) {
		t.Parallel()
		cfg := composer.DefaultStyle()
		cfg.Style = composer.Style("nope")
		frames, _, err := composer.GenerateAnimated("spin", cfg, 3)
		require.ErrorIs(t, err, composer.ErrUnknownStyle)
		assert.Nil(t, frames)
	})
}

func TestFrameAngle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, composer.FrameAngle(0, 10))
	assert.Equal(t, 180.0, composer.FrameAngle(5, 10))
	assert.Equal(t, 90.0, composer.FrameAngle(1, 4))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("png", func(t *testing.T) {
		t.Parallel()
		res, err := composer.Create("png", composer.DefaultStyle())
		require.NoError(t, err)

		data, err := composer.EncodePNG(res.Image)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, res.Image.Bounds(), img.Bounds())
	})

	t.Run("apng uses the largest frame as canvas", func(t *testing.T) {
		t.Parallel()
		frames, _, err := composer.GenerateAnimated("apng", composer.DefaultStyle(), 4)
		require.NoError(t, err)

		data, err := composer.EncodeAPNG(frames, 3)
		require.NoError(t, err)
		assert.True(t, bytes.Contains(data, []byte("acTL")), "expected an animation control chunk")

		var maxW int
		for _, f := range frames {
			maxW = max(maxW, f.Image.Bounds().Dx())
		}
		// Plain PNG decoders show the first frame at the full canvas size.
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, maxW, img.Bounds().Dx())
	})

	t.Run("no frames", func(t *testing.T) {
		t.Parallel()
		_, err := composer.EncodeAPNG(nil, 3)
		assert.ErrorIs(t, err, composer.ErrNoFrames)
	})
}

func TestFrameDelay(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 200*time.Millisecond, composer.FrameDelay(0))
	assert.Equal(t, 600*time.Millisecond, composer.FrameDelay(1))
	assert.Equal(t, 120*time.Millisecond, composer.FrameDelay(5))
	assert.Equal(t, 120*time.Millisecond, composer.FrameDelay(99))
	assert.Equal(t, 600*time.Millisecond, composer.FrameDelay(-2))
}

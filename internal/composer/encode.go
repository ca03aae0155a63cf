package composer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kettek/apng"
)

var ErrNoFrames = errors.New("no frames to encode")

const (
	DefaultSpeed = 3
	minSpeed     = 1
	maxSpeed     = 5
	// speedUnit is the frame delay at speed 1.
	speedUnit = 600 * time.Millisecond
)

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FrameDelay maps an animation speed (1 slowest, 5 fastest) to a frame delay.
// Out of range speeds are clamped; zero means DefaultSpeed.
func FrameDelay(speed int) time.Duration {
	switch {
	case speed == 0:
		speed = DefaultSpeed
	case speed < minSpeed:
		speed = minSpeed
	case speed > maxSpeed:
		speed = maxSpeed
	}
	return speedUnit / time.Duration(speed)
}

// EncodeAPNG packs frames into an animated PNG. Rotated frames differ in size,
// so each one is centred on a transparent canvas as large as the biggest frame.
func EncodeAPNG(frames []Frame, speed int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	var w, h int
	for _, f := range frames {
		w = max(w, f.Image.Bounds().Dx())
		h = max(h, f.Image.Bounds().Dy())
	}

	delay := uint16(FrameDelay(speed).Milliseconds())
	a := apng.APNG{Frames: make([]apng.Frame, 0, len(frames))}
	for _, f := range frames {
		canvas := imaging.New(w, h, color.Transparent)
		canvas = imaging.PasteCenter(canvas, f.Image)
		a.Frames = append(a.Frames, apng.Frame{
			Image:            canvas,
			DelayNumerator:   delay,
			DelayDenominator: 1000,
		})
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

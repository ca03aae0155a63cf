package composer

import (
	"image"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DefaultFrameCount is the number of frames in an animation preview.
const DefaultFrameCount = 10

// Frame is one step of the rotation preview.
type Frame struct {
	Index int
	// Angle is the counter-clockwise rotation in degrees.
	Angle float64
	Image *image.NRGBA
}

// FrameAngle returns the rotation of frame i out of n.
func FrameAngle(i, n int) float64 {
	return float64(i) / float64(n) * 360
}

// GenerateAnimated composes frameCount independent images, rotating frame i
// by i/frameCount*360 degrees with the canvas expanded to fit.
// A non-positive frameCount means DefaultFrameCount.
func GenerateAnimated(payload string, cfg StyleConfig, frameCount int) ([]Frame, []string, error) {
	if frameCount <= 0 {
		frameCount = DefaultFrameCount
	}

	frames := make([]Frame, 0, frameCount)
	var warnings []string
	for i := range frameCount {
		res, err := Create(payload, cfg)
		if err != nil {
			return nil, nil, err
		}
		for _, w := range res.Warnings {
			if !slices.Contains(warnings, w) {
				warnings = append(warnings, w)
			}
		}

		angle := FrameAngle(i, frameCount)
		img := res.Image
		if angle > 0 {
			img = rotate(img, angle)
		}
		frames = append(frames, Frame{Index: i, Angle: angle, Image: img})
	}
	return frames, warnings, nil
}

// rotate turns img counter-clockwise by angle degrees with bicubic
// (Catmull-Rom) resampling onto a transparent canvas large enough to hold
// the whole result.
func rotate(img *image.NRGBA, angle float64) *image.NRGBA {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	sw, sh := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	// The epsilon keeps exact quarter turns from growing a pixel.
	dw := int(math.Ceil(math.Abs(sw*cos)+math.Abs(sh*sin)-1e-9))
	dh := int(math.Ceil(math.Abs(sw*sin)+math.Abs(sh*cos)-1e-9))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	sx, sy := float64(img.Bounds().Min.X)+sw/2, float64(img.Bounds().Min.Y)+sh/2
	dx, dy := float64(dw)/2, float64(dh)/2
	s2d := f64.Aff3{
		cos, sin, dx - (cos*sx + sin*sy),
		-sin, cos, dy - (-sin*sx + cos*sy),
	}
	xdraw.CatmullRom.Transform(dst, s2d, img, img.Bounds(), xdraw.Over, nil)
	return dst
}

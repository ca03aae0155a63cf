// Package composer renders a payload into a styled QR bitmap.
//
// Encoding is delegated to github.com/yeqown/go-qrcode; this package picks the
// module size, then post-processes the bitmap: corner rounding, a soft-dot
// blur, round modules, a centred logo and, for the animation preview,
// rotation. Every call is a pure function of (payload, StyleConfig).
package composer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

const (
	// sizeDivisor converts the requested overall size into a module size.
	sizeDivisor = 25
	// quietZone is the border width in modules.
	quietZone = 4
	// cornerRadius of the Rounded style mask, in pixels.
	cornerRadius = 20
	// dotsBlurSigma is the Gaussian blur applied at twice the resolution by the Dots style.
	dotsBlurSigma = 1.0
	// logoRatio of the requested size taken by the logo's edge.
	logoRatio = 0.2
)

// Result is a composed image plus any non-fatal problems met on the way.
type Result struct {
	Image    *image.NRGBA
	Warnings []string
}

// ModuleSize returns the pixel edge of one module for the requested size.
func ModuleSize(size int) (int, error) {
	box := size / sizeDivisor
	if box < 1 || box > 255 {
		return 0, fmt.Errorf("%w: %d (module size %d)", ErrInvalidSize, size, box)
	}
	return box, nil
}

// Create encodes payload and applies the style described by cfg.
// A logo that cannot be decoded is reported in Result.Warnings and skipped;
// every other failure is returned.
func Create(payload string, cfg StyleConfig) (*Result, error) {
	img, err := render(payload, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{Image: img}
	if len(cfg.Logo) > 0 {
		withLogo, err := overlayLogo(img, cfg.Logo, cfg.Size)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("could not process logo: %v", err))
		} else {
			res.Image = withLogo
		}
	}
	return res, nil
}

// render runs the encode and style steps.
func render(payload string, cfg StyleConfig) (*image.NRGBA, error) {
	base, err := encode(payload, cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Style {
	case StyleClassic, StyleArtistic:
		// Artistic differs at encode time only: round modules.
		return base, nil
	case StyleRounded:
		return roundCorners(base, cornerRadius), nil
	case StyleDots:
		return softDots(base), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, string(cfg.Style))
	}
}

// encode produces the base bitmap in foreground/background colours with a
// quiet zone of four modules.
func encode(payload string, cfg StyleConfig) (*image.NRGBA, error) {
	box, err := ModuleSize(cfg.Size)
	if err != nil {
		return nil, err
	}
	ecOpt, err := cfg.ErrorCorrection.encodeOption()
	if err != nil {
		return nil, err
	}

	opts := []standard.ImageOption{
		standard.WithQRWidth(uint8(box)),
		standard.WithBorderWidth(quietZone * box),
		standard.WithFgColor(cfg.Foreground),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}
	if cfg.Background.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(cfg.Background))
	}
	switch cfg.Style {
	case StyleArtistic:
		opts = append(opts, standard.WithCircleShape())
	case StyleClassic, StyleRounded, StyleDots:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, string(cfg.Style))
	}

	qrc, err := qrcode.NewWith(payload, ecOpt)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf}, opts...)
	if err := qrc.Save(w); err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return imaging.Clone(img), nil
}

// roundCorners clips the four corners through a rounded-rectangle alpha mask
// onto a transparent canvas.
func roundCorners(img *image.NRGBA, radius float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	dc.SetColor(color.White)
	dc.Fill()
	mask := dc.AsMask()

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(out, out.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return out
}

// softDots upscales 2x, blurs slightly and scales back down.
// The result is not guaranteed to stay decodable.
func softDots(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	big := imaging.Resize(img, w*2, h*2, imaging.NearestNeighbor)
	big = imaging.Blur(big, dotsBlurSigma)
	return imaging.Resize(big, w, h, imaging.NearestNeighbor)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

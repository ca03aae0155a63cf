package composer

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var errLogoTooSmall = errors.New("logo size rounds to zero pixels")

// LogoSize is the edge of the square the logo is resized to.
func LogoSize(size int) int {
	return int(float64(size) * logoRatio)
}

// overlayLogo pastes the logo centred over img, blended through the logo's alpha.
func overlayLogo(img *image.NRGBA, data []byte, size int) (*image.NRGBA, error) {
	edge := LogoSize(size)
	if edge < 1 {
		return nil, errLogoTooSmall
	}
	logo, err := decodeLogo(data, edge)
	if err != nil {
		return nil, err
	}
	logo = imaging.Resize(logo, edge, edge, imaging.NearestNeighbor)

	b := img.Bounds()
	pos := image.Pt((b.Dx()-edge)/2, (b.Dy()-edge)/2)
	return imaging.Overlay(img, logo, pos, 1.0), nil
}

// decodeLogo returns the logo as NRGBA. SVG input is rasterised at edge x edge.
func decodeLogo(data []byte, edge int) (*image.NRGBA, error) {
	if isSVG(data) {
		return rasterizeSVG(data, edge)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return imaging.Clone(img), nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func rasterizeSVG(data []byte, edge int) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg logo: %w", err)
	}
	icon.SetTarget(0, 0, float64(edge), float64(edge))

	rgba := image.NewRGBA(image.Rect(0, 0, edge, edge))
	scanner := rasterx.NewScannerGV(edge, edge, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(edge, edge, scanner), 1)
	return imaging.Clone(rgba), nil
}

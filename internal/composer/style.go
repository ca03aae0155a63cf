package composer

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

var (
	ErrUnknownStyle   = errors.New("unknown qr style")
	ErrUnknownECLevel = errors.New("unknown error correction level")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidSize    = errors.New("invalid qr size")
	ErrEncode         = errors.New("failed to encode qr code")
)

// Style selects the cosmetic transform applied after encoding.
type Style string

const (
	StyleClassic  Style = "Classic"
	StyleRounded  Style = "Rounded"
	StyleDots     Style = "Dots"
	StyleArtistic Style = "Artistic"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleClassic, StyleRounded, StyleDots, StyleArtistic}

// ParseStyle matches s case-insensitively against the supported styles.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// ECLevel is one of the four QR error correction tiers.
type ECLevel string

const (
	ECLow     ECLevel = "L"
	ECMedium  ECLevel = "M"
	ECQuart   ECLevel = "Q"
	ECHighest ECLevel = "H"
)

// ECLevels lists the levels from least to most resilient.
var ECLevels = []ECLevel{ECLow, ECMedium, ECQuart, ECHighest}

// ParseECLevel accepts L, M, Q or H in either case.
func ParseECLevel(s string) (ECLevel, error) {
	switch l := ECLevel(strings.ToUpper(strings.TrimSpace(s))); l {
	case ECLow, ECMedium, ECQuart, ECHighest:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownECLevel, s)
}

func (l ECLevel) encodeOption() (qrcode.EncodeOption, error) {
	switch l {
	case ECLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow), nil
	case ECMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium), nil
	case ECQuart:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart), nil
	case ECHighest:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownECLevel, string(l))
}

// StyleConfig is everything a single generation call needs besides the payload.
// It is passed by value; callers build a fresh one from their own input.
type StyleConfig struct {
	Size            int
	ErrorCorrection ECLevel
	Foreground      color.RGBA
	Background      color.RGBA
	Style           Style
	// Logo holds raw PNG, JPEG, GIF or SVG bytes. Nil means no logo.
	Logo []byte
}

// DefaultStyle mirrors the defaults of the generator form.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Size:            200,
		ErrorCorrection: ECLow,
		Foreground:      color.RGBA{0, 0, 0, 255},
		Background:      color.RGBA{255, 255, 255, 255},
		Style:           StyleClassic,
	}
}

// ParseHexColor parses "#RRGGBB" (the leading # is optional) or "transparent".
// An empty string yields def.
func ParseHexColor(s string, def color.RGBA) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{0, 0, 0, 0}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return def, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return def, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Package termqr prints QR codes as text for terminal previews.
package termqr

import (
	"fmt"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
)

func recoveryLevel(l composer.ECLevel) (skipqrcode.RecoveryLevel, error) {
	switch l {
	case composer.ECLow:
		return skipqrcode.Low, nil
	case composer.ECMedium:
		return skipqrcode.Medium, nil
	case composer.ECQuart:
		return skipqrcode.High, nil
	case composer.ECHighest:
		return skipqrcode.Highest, nil
	}
	return 0, fmt.Errorf("%w: %q", composer.ErrUnknownECLevel, string(l))
}

// Render draws payload with half-block characters, two modules per line.
// invert swaps dark and light for terminals with a light background.
func Render(payload string, level composer.ECLevel, invert bool) (string, error) {
	rl, err := recoveryLevel(level)
	if err != nil {
		return "", err
	}
	q, err := skipqrcode.New(payload, rl)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return q.ToSmallString(invert), nil
}

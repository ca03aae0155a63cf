// Package scanner decodes QR codes from still images.
package scanner

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

var (
	// ErrNotFound means the image holds no readable QR code.
	ErrNotFound = errors.New("no QR code detected in the image")
	// ErrInvalidImage is returned when the upload is not a decodable image.
	ErrInvalidImage = errors.New("invalid image")
)

// Decode reads the first QR code found in img.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.Join(ErrInvalidImage, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if result.GetText() == "" {
		return "", ErrNotFound
	}
	return result.GetText(), nil
}

// DecodeFile opens an image file and decodes a QR code from it.
func DecodeFile(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", errors.Join(ErrInvalidImage, err)
	}
	return Decode(img)
}

// DecodeBytes spools data into a temporary file and decodes it. The file is
// removed on every return path. ext is used as the temp file suffix.
func DecodeBytes(data []byte, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
		ext = ".png"
	}
	tmp, err := os.CreateTemp("", "qrscan_*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return DecodeFile(tmp.Name())
}

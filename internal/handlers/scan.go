package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/scanner"
)

// scan decodes the QR code in an uploaded image.
func (h *Handler) scan(c *gin.Context) (string, error) {
	data, filename, err := readUpload(c, "image")
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: Please upload an image!", errMissingFile)
	}

	text, err := scanner.DecodeBytes(data, filepath.Ext(filename))
	if err != nil {
		h.log.Info("qr scan failed", "file", filename, "error", err, "request_id", c.GetString(requestIDKey))
		return "", err
	}
	h.log.Info("qr scanned", "file", filename, "length", len(text), "request_id", c.GetString(requestIDKey))
	return text, nil
}

// ScanHandler decodes the QR code in an uploaded image.
func (h *Handler) ScanHandler(c *gin.Context) {
	text, err := h.scan(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/batch"
	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
)

// buildBatch turns every row of an uploaded CSV into a QR code and packs
// them into a zip archive of batch_qr_<n>_<timestamp>.png files.
func (h *Handler) buildBatch(c *gin.Context) (*generated, error) {
	data, _, err := readUpload(c, "file")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: Please upload a CSV file!", errMissingFile)
	}

	records, err := batch.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	style, err := h.styleFromForm(c)
	if err != nil {
		return nil, err
	}

	now := h.now()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var warnings []string
	for i, rec := range records {
		text, err := rec.Payload()
		if err != nil {
			return nil, err
		}
		res, err := composer.Create(text, style)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		for _, w := range res.Warnings {
			if !slices.Contains(warnings, w) {
				warnings = append(warnings, w)
			}
		}
		png, err := composer.EncodePNG(res.Image)
		if err != nil {
			return nil, err
		}
		f, err := zw.Create(payload.BatchDownloadName(i+1, now))
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(png); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	h.log.Info("batch generated", "rows", len(records), "request_id", c.GetString(requestIDKey))
	return &generated{
		filename:    fmt.Sprintf("batch_qr_%s.zip", now.Format("20060102_150405")),
		contentType: "application/zip",
		data:        buf.Bytes(),
		warnings:    warnings,
		count:       len(records),
	}, nil
}

// BatchHandler returns the batch archive as a zip download.
func (h *Handler) BatchHandler(c *gin.Context) {
	g, err := h.buildBatch(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.send(c, g)
}

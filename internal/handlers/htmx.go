package handlers

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/web/components"
	"github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
)

// render writes an HTML component with status 200.
func (h *Handler) render(c *gin.Context, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("render component", "path", c.FullPath(), "error", err)
	}
}

func warningNotices(warnings []string) []toast.Props {
	notices := make([]toast.Props, 0, len(warnings))
	for _, w := range warnings {
		notices = append(notices, toast.Props{Title: "Warning", Description: w, Variant: toast.VariantWarning})
	}
	return notices
}

// preview renders what build produced as an inline image or download link
// with a toast per warning.
func (h *Handler) preview(c *gin.Context, build func(*gin.Context) (*generated, error), success func(*generated) string) {
	g, err := build(c)
	if err != nil {
		h.failToast(c, err)
		return
	}
	for _, w := range g.warnings {
		h.log.Warn("qr warning", "warning", w, "request_id", c.GetString(requestIDKey))
	}
	notices := append([]toast.Props{{Title: success(g), Variant: toast.VariantSuccess}}, warningNotices(g.warnings)...)
	h.render(c, components.Result(components.Download{
		Filename:    g.filename,
		ContentType: g.contentType,
		Data:        g.data,
		Image:       g.contentType == "image/png",
	}, notices...))
}

// QRPreviewHandler is the htmx form target for single codes.
func (h *Handler) QRPreviewHandler(c *gin.Context) {
	h.preview(c, h.buildQR, func(*generated) string { return "QR code generated successfully!" })
}

// AnimatedQRPreviewHandler is the htmx form target for the rotation preview.
func (h *Handler) AnimatedQRPreviewHandler(c *gin.Context) {
	h.preview(c, h.buildAnimated, func(*generated) string { return "Animated preview generated!" })
}

// BatchPreviewHandler is the htmx form target for CSV batches.
func (h *Handler) BatchPreviewHandler(c *gin.Context) {
	h.preview(c, h.buildBatch, func(g *generated) string {
		return fmt.Sprintf("Generated %d QR codes!", g.count)
	})
}

// ScanPreviewHandler is the htmx form target for the scanner.
func (h *Handler) ScanPreviewHandler(c *gin.Context) {
	text, err := h.scan(c)
	if err != nil {
		h.failToast(c, err)
		return
	}
	h.render(c, components.ScanResult(text, toast.Props{
		Title:       "QR code detected",
		Description: fmt.Sprintf("%d characters decoded", len([]rune(text))),
		Variant:     toast.VariantSuccess,
	}))
}

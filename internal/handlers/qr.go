package handlers

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/config"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
)

const maxFrames = 36

// formValue reads key from the request body first, then the query string.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

func formBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(formValue(c, key))) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func formInt(c *gin.Context, key string, def int) (int, error) {
	v := strings.TrimSpace(formValue(c, key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", errInvalidParam, key, v)
	}
	return n, nil
}

// readUpload returns the bytes and client filename of an uploaded file.
// A missing file yields nil data and no error.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

// payloadFromForm builds the payload for kind from the submitted fields.
func payloadFromForm(c *gin.Context, kind payload.Kind) (string, error) {
	switch kind {
	case payload.KindText:
		return payload.Text(formValue(c, "text"))
	case payload.KindURL:
		return payload.URL(formValue(c, "url"))
	case payload.KindWiFi:
		sec, err := payload.ParseSecurity(formValue(c, "security"))
		if err != nil {
			return "", err
		}
		return payload.WiFi{
			SSID:     formValue(c, "ssid"),
			Password: formValue(c, "password"),
			Security: sec,
			Hidden:   formBool(c, "hidden"),
		}.Payload()
	case payload.KindContact:
		return payload.Contact{
			Name:    formValue(c, "name"),
			Phone:   formValue(c, "phone"),
			Email:   formValue(c, "email"),
			Company: formValue(c, "company"),
			Title:   formValue(c, "title"),
			Website: formValue(c, "website"),
		}.Payload()
	}
	return "", fmt.Errorf("%w: kind %q", errInvalidParam, string(kind))
}

// styleFromForm starts from the configured defaults and applies the style
// fields present in the request.
func (h *Handler) styleFromForm(c *gin.Context) (composer.StyleConfig, error) {
	cfg := h.style

	size, err := formInt(c, "size", cfg.Size)
	if err != nil {
		return cfg, err
	}
	if size < config.MinSize || size > config.MaxSize {
		return cfg, fmt.Errorf("%w: %d must be between %d and %d", composer.ErrInvalidSize, size, config.MinSize, config.MaxSize)
	}
	cfg.Size = size

	if v := formValue(c, "ec"); v != "" {
		if cfg.ErrorCorrection, err = composer.ParseECLevel(v); err != nil {
			return cfg, err
		}
	}
	if cfg.Foreground, err = composer.ParseHexColor(formValue(c, "fg"), cfg.Foreground); err != nil {
		return cfg, err
	}
	if cfg.Background, err = composer.ParseHexColor(formValue(c, "bg"), cfg.Background); err != nil {
		return cfg, err
	}
	if formBool(c, "bg_transparent") {
		cfg.Background = color.RGBA{}
	}
	if v := formValue(c, "style"); v != "" {
		if cfg.Style, err = composer.ParseStyle(v); err != nil {
			return cfg, err
		}
	}

	logo, _, err := readUpload(c, "logo")
	if err != nil {
		return cfg, err
	}
	cfg.Logo = logo
	return cfg, nil
}

// request resolves kind, payload and style shared by the single and animated handlers.
func (h *Handler) request(c *gin.Context) (payload.Kind, string, composer.StyleConfig, error) {
	kind, ok := payload.ParseKind(c.Param("kind"))
	if !ok {
		return "", "", composer.StyleConfig{}, fmt.Errorf("%w %q", errUnknownKind, c.Param("kind"))
	}
	data, err := payloadFromForm(c, kind)
	if err != nil {
		return "", "", composer.StyleConfig{}, err
	}
	style, err := h.styleFromForm(c)
	if err != nil {
		return "", "", composer.StyleConfig{}, err
	}
	return kind, data, style, nil
}

// generated is an encoded file and the warnings raised while building it.
type generated struct {
	filename    string
	contentType string
	data        []byte
	warnings    []string
	// count is the number of codes in the file.
	count int
}

// warn exposes non-fatal problems as X-QR-Warning headers.
func (h *Handler) warn(c *gin.Context, warnings []string) {
	for _, w := range warnings {
		c.Writer.Header().Add("X-QR-Warning", w)
		h.log.Warn("qr warning", "warning", w, "request_id", c.GetString(requestIDKey))
	}
}

// send writes g as an attachment.
func (h *Handler) send(c *gin.Context, g *generated) {
	h.warn(c, g.warnings)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, g.filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, g.contentType, g.data)
}

// buildQR generates a single styled QR code PNG for text, url, wifi or contact input.
func (h *Handler) buildQR(c *gin.Context) (*generated, error) {
	kind, data, style, err := h.request(c)
	if err != nil {
		return nil, err
	}

	res, err := composer.Create(data, style)
	if err != nil {
		return nil, err
	}
	png, err := composer.EncodePNG(res.Image)
	if err != nil {
		return nil, err
	}

	b := res.Image.Bounds()
	c.Header("X-QR-Debug", fmt.Sprintf("size=%d;style=%s;ec=%s;width=%d", style.Size, style.Style, style.ErrorCorrection, b.Dx()))
	h.log.Info("qr generated",
		"kind", kind,
		"style", style.Style,
		"size", style.Size,
		"width", b.Dx(),
		"logo", len(style.Logo) > 0,
		"request_id", c.GetString(requestIDKey))
	return &generated{
		filename:    payload.DownloadName(kind, h.now()),
		contentType: "image/png",
		data:        png,
		warnings:    res.Warnings,
	}, nil
}

// buildAnimated renders the rotation preview as an animated PNG.
func (h *Handler) buildAnimated(c *gin.Context) (*generated, error) {
	kind, data, style, err := h.request(c)
	if err != nil {
		return nil, err
	}
	frames, err := formInt(c, "frames", h.defaults.Frames)
	if err != nil {
		return nil, err
	}
	if frames < 1 || frames > maxFrames {
		return nil, fmt.Errorf("%w: frames must be between 1 and %d", errInvalidParam, maxFrames)
	}
	speed, err := formInt(c, "speed", h.defaults.Speed)
	if err != nil {
		return nil, err
	}

	seq, warnings, err := composer.GenerateAnimated(data, style, frames)
	if err != nil {
		return nil, err
	}
	out, err := composer.EncodeAPNG(seq, speed)
	if err != nil {
		return nil, err
	}
	h.log.Info("animated qr generated",
		"kind", kind,
		"frames", len(seq),
		"speed", speed,
		"request_id", c.GetString(requestIDKey))
	return &generated{
		filename:    payload.DownloadName(kind, h.now()),
		contentType: "image/png",
		data:        out,
		warnings:    warnings,
	}, nil
}

// QRCodeHandler returns a single styled QR code as a PNG download.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	g, err := h.buildQR(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.send(c, g)
}

// AnimatedQRHandler returns the rotation preview as an APNG download.
func (h *Handler) AnimatedQRHandler(c *gin.Context) {
	g, err := h.buildAnimated(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.send(c, g)
}

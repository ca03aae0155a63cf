package handlers

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/config"
	"github.com/cristianadrielbraun/qrstudio/web/components"
	"github.com/cristianadrielbraun/qrstudio/web/pages"
)

// Handler carries the dependencies of the HTTP handlers. It holds no
// per-request state: every request builds its own StyleConfig.
type Handler struct {
	log       *slog.Logger
	defaults  config.Style
	style     composer.StyleConfig
	maxUpload int64
	now       func() time.Time
	pages     []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock replaces time.Now, used for download file names.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New returns a Handler using the style defaults and upload limit from cfg.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*Handler, error) {
	style, err := cfg.Style.StyleConfig()
	if err != nil {
		return nil, fmt.Errorf("default style: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		log:       log,
		defaults:  cfg.Style,
		style:     style,
		maxUpload: cfg.MaxUploadBytes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// HomePage renders the generator forms pre-filled with the configured defaults.
func (h *Handler) HomePage(c *gin.Context) {
	styles := make([]string, 0, len(composer.Styles))
	for _, s := range composer.Styles {
		styles = append(styles, string(s))
	}
	levels := make([]string, 0, len(composer.ECLevels))
	for _, l := range composer.ECLevels {
		levels = append(levels, string(l))
	}

	fields := components.StyleFields{
		Size:            h.style.Size,
		MinSize:         config.MinSize,
		MaxSize:         config.MaxSize,
		ErrorCorrection: string(h.style.ErrorCorrection),
		Foreground:      composer.HexColor(h.style.Foreground),
		Background:      composer.HexColor(h.style.Background),
		Transparent:     h.style.Background.A == 0,
		Style:           string(h.style.Style),
		Styles:          styles,
		ECLevels:        levels,
		Speed:           h.defaults.Speed,
	}
	if fields.Transparent {
		fields.Background = "#ffffff"
	}
	h.render(c, pages.HomePage(fields))
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// page registers a GET route that is listed in the sitemap.
func (h *Handler) page(r gin.IRoutes, path string, handler gin.HandlerFunc) {
	r.GET(path, handler)
	h.pages = append(h.pages, path)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML lists the registered pages.
func (h *Handler) SitemapXML(c *gin.Context) {
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")) {
		scheme = "http"
	}

	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range h.pages {
		priority := "0.8"
		if p == "/" {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: scheme + "://" + host + p, ChangeFreq: "weekly", Priority: priority})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

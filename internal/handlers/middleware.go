package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote", c.ClientIP(),
			"request_id", id)
	}
}

// BodyLimit caps request bodies at n bytes.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// NewRouter wires the pages and the /api group.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.log))
	r.MaxMultipartMemory = h.maxUpload

	h.page(r, "/", h.HomePage)
	r.GET("/healthz", h.Health)
	r.GET("/sitemap.xml", h.SitemapXML)

	api := r.Group("/api")
	api.Use(BodyLimit(h.maxUpload))
	{
		api.GET("/qr/:kind", h.QRCodeHandler)
		api.POST("/qr/:kind", h.QRCodeHandler)
		api.GET("/qr/:kind/animated", h.AnimatedQRHandler)
		api.POST("/qr/:kind/animated", h.AnimatedQRHandler)
		api.POST("/batch", h.BatchHandler)
		api.POST("/scan", h.ScanHandler)
		api.POST("/htmx/toast", h.GenericToast)
		api.POST("/htmx/qr/:kind", h.QRPreviewHandler)
		api.POST("/htmx/qr/:kind/animated", h.AnimatedQRPreviewHandler)
		api.POST("/htmx/batch", h.BatchPreviewHandler)
		api.POST("/htmx/scan", h.ScanPreviewHandler)
	}
	return r
}

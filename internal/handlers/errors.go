package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/batch"
	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/scanner"
	"github.com/cristianadrielbraun/qrstudio/web/components"
	"github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
)

var (
	errInvalidParam = errors.New("invalid parameter")
	errMissingFile  = errors.New("file upload is required")
	errUnknownKind  = errors.New("unknown QR type")
)

const noCodeMessage = "No QR code detected in the image"

// problem is the user-facing shape of a failed request.
type problem struct {
	status  int
	message string
	warning string
}

// describe maps err onto its status and message. Unexpected errors are logged.
func (h *Handler) describe(c *gin.Context, err error) problem {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, payload.ErrMissingField):
		return problem{status: http.StatusUnprocessableEntity, message: err.Error(), warning: payload.Warning(err)}
	case errors.As(err, &tooLarge):
		return problem{status: http.StatusRequestEntityTooLarge, message: "upload is too large"}
	case errors.Is(err, scanner.ErrNotFound):
		return problem{status: http.StatusNotFound, message: noCodeMessage}
	case errors.Is(err, errUnknownKind):
		return problem{status: http.StatusNotFound, message: err.Error()}
	case errors.Is(err, composer.ErrUnknownStyle),
		errors.Is(err, composer.ErrUnknownECLevel),
		errors.Is(err, composer.ErrInvalidColor),
		errors.Is(err, composer.ErrInvalidSize),
		errors.Is(err, payload.ErrInvalidSecurity),
		errors.Is(err, batch.ErrNoRows),
		errors.Is(err, batch.ErrMalformedCSV),
		errors.Is(err, scanner.ErrInvalidImage),
		errors.Is(err, errInvalidParam),
		errors.Is(err, errMissingFile):
		return problem{status: http.StatusBadRequest, message: err.Error()}
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err, "request_id", c.GetString(requestIDKey))
		return problem{status: http.StatusInternalServerError, message: err.Error()}
	}
}

// fail writes the JSON error response matching err's category.
func (h *Handler) fail(c *gin.Context, err error) {
	p := h.describe(c, err)
	body := gin.H{"error": p.message}
	if p.warning != "" {
		body["warning"] = p.warning
	}
	c.JSON(p.status, body)
}

// failToast reports err as a toast and leaves the swap target untouched.
// htmx only swaps 2xx responses, so the fragment is sent with 200.
func (h *Handler) failToast(c *gin.Context, err error) {
	p := h.describe(c, err)
	n := toast.Props{Title: "Could not complete the request", Description: p.message, Variant: toast.VariantError}
	switch {
	case p.warning != "":
		n = toast.Props{Title: p.warning, Variant: toast.VariantWarning}
	case errors.Is(err, scanner.ErrNotFound):
		n = toast.Props{Title: p.message, Variant: toast.VariantInfo}
	}
	c.Header("HX-Reswap", "none")
	h.render(c, components.Notices(n))
}

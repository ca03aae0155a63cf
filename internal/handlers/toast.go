package handlers

import (
	"github.com/gin-gonic/gin"

	toast "github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	variant := toast.ParseVariant(c.PostForm("variant"))
	dismissible := c.PostForm("dismissible") == "on"

	h.render(c, toast.Toast(toast.Props{
		Title:         title,
		Description:   description,
		Variant:       variant,
		Position:      toast.PositionBottomRight,
		Duration:      2000,
		Dismissible:   dismissible,
		ShowIndicator: false,
		Icon:          true,
	}))
}

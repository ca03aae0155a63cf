// Package toast renders dismissible notification fragments for HTMX swaps.
package toast

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

// ParseVariant maps form values onto a Variant; unknown values become success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	default:
		return VariantSuccess
	}
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-300 bg-green-50 text-green-900",
	VariantError:   "border-red-300 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-300 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-300 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionTopLeft:      "top-4 left-4",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomLeft:   "bottom-4 left-4",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var icons = map[Variant]string{
	VariantSuccess: "✔",
	VariantError:   "✖",
	VariantWarning: "⚠",
	VariantInfo:    "ℹ",
}

// Classes returns the merged class list for p; p.Class wins over defaults.
func Classes(p Props) string {
	v := p.Variant
	if v == "" {
		v = VariantDefault
	}
	pos := p.Position
	if pos == "" {
		pos = PositionBottomRight
	}
	return twmerge.Merge(
		"fixed z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg",
		positionClasses[pos],
		variantClasses[v],
		p.Class,
	)
}

// Toast renders a toast element. Duration is in milliseconds; 0 keeps it open.
func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<div role="alert" data-toast`)
		if p.ID != "" {
			fmt.Fprintf(&b, ` id="%s"`, templ.EscapeString(p.ID))
		}
		fmt.Fprintf(&b, ` class="%s" data-variant="%s" data-duration="%d">`,
			templ.EscapeString(Classes(p)), templ.EscapeString(string(p.Variant)), p.Duration)

		if p.Icon {
			if icon, ok := icons[p.Variant]; ok {
				fmt.Fprintf(&b, `<span aria-hidden="true">%s</span>`, icon)
			}
		}
		b.WriteString(`<div class="flex-1">`)
		if p.Title != "" {
			fmt.Fprintf(&b, `<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title))
		}
		if p.Description != "" {
			fmt.Fprintf(&b, `<p class="text-sm opacity-90">%s</p>`, templ.EscapeString(p.Description))
		}
		b.WriteString(`</div>`)
		if p.Dismissible {
			b.WriteString(`<button type="button" aria-label="Close" onclick="this.closest('[data-toast]').remove()">&times;</button>`)
		}
		if p.ShowIndicator && p.Duration > 0 {
			fmt.Fprintf(&b, `<div class="absolute bottom-0 left-0 h-1 bg-current opacity-30" style="animation: toast-progress %dms linear forwards"></div>`, p.Duration)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

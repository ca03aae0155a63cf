package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func option(b *strings.Builder, value, selected string) {
	sel := ""
	if value == selected {
		sel = " selected"
	}
	v := templ.EscapeString(value)
	fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, v, sel, v)
}

// StylePanel renders the size, colour, style, logo and animation inputs.
// Each form embeds its own copy so every request carries its full style.
func StylePanel(f StyleFields) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<fieldset class="grid gap-2"><legend class="font-semibold">QR Code Settings</legend>`)

		fmt.Fprintf(&b, `<label>QR Code Size <input type="range" name="size" min="%d" max="%d" value="%d"></label>`,
			f.MinSize, f.MaxSize, f.Size)

		b.WriteString(`<label>Error Correction Level <select name="ec">`)
		for _, l := range f.ECLevels {
			option(&b, l, f.ErrorCorrection)
		}
		b.WriteString(`</select></label>`)

		fmt.Fprintf(&b, `<label>QR Code Color <input type="color" name="fg" value="%s"></label>`, templ.EscapeString(f.Foreground))
		fmt.Fprintf(&b, `<label>Background Color <input type="color" name="bg" value="%s"></label>`, templ.EscapeString(f.Background))
		checked := ""
		if f.Transparent {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<label><input type="checkbox" name="bg_transparent" value="true"%s> Transparent background</label>`, checked)

		b.WriteString(`<label>QR Code Style <select name="style">`)
		for _, s := range f.Styles {
			option(&b, s, f.Style)
		}
		b.WriteString(`</select></label>`)

		b.WriteString(`<label>Logo (PNG with transparency, JPEG or SVG) <input type="file" name="logo" accept="image/png,image/jpeg,image/svg+xml"></label>`)
		fmt.Fprintf(&b, `<label>Animation Speed <input type="range" name="speed" min="1" max="5" value="%d"></label>`, f.Speed)
		b.WriteString(`</fieldset>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

package components

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
)

// ToastRegion is the id of the element notices are appended to.
const ToastRegion = "toasts"

const noticeDuration = 4000

// Download is a generated file shown inline and offered as a download link.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
	// Image shows the file as a picture above the link.
	Image bool
	Label string
}

func (d Download) dataURI() string {
	return "data:" + d.ContentType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

func writeNotices(ctx context.Context, b *strings.Builder, notices []toast.Props) error {
	if len(notices) == 0 {
		return nil
	}
	fmt.Fprintf(b, `<div id="%s" hx-swap-oob="beforeend">`, ToastRegion)
	for _, n := range notices {
		// Toasts stack inside the fixed region instead of positioning themselves.
		n.Class = "relative inset-auto w-full"
		if n.Duration == 0 {
			n.Duration = noticeDuration
		}
		n.Dismissible = true
		n.Icon = true
		if err := toast.Toast(n).Render(ctx, b); err != nil {
			return err
		}
	}
	b.WriteString(`</div>`)
	return nil
}

// Notices renders toasts as an out-of-band swap into the toast region.
func Notices(notices ...toast.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if err := writeNotices(ctx, &b, notices); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Result renders a generated file followed by any notices.
func Result(d Download, notices ...toast.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		uri := templ.EscapeString(d.dataURI())
		name := templ.EscapeString(d.Filename)

		b.WriteString(`<div class="grid justify-items-center gap-2">`)
		if d.Image {
			fmt.Fprintf(&b, `<img src="%s" alt="%s" class="max-w-full">`, uri, name)
		}
		label := d.Label
		if label == "" {
			label = "Download " + d.Filename
		}
		fmt.Fprintf(&b, `<a href="%s" download="%s" class="underline">%s</a>`, uri, name, templ.EscapeString(label))
		b.WriteString(`</div>`)

		if err := writeNotices(ctx, &b, notices); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ScanResult shows decoded text followed by any notices.
func ScanResult(text string, notices ...toast.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="grid gap-2"><p class="font-semibold">QR Code Content:</p>`)
		fmt.Fprintf(&b, `<pre class="whitespace-pre-wrap break-all rounded border p-2">%s</pre></div>`, templ.EscapeString(text))
		if err := writeNotices(ctx, &b, notices); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

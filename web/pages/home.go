package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrstudio/web/components"
)

const (
	htmxCDN     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindCDN = "https://cdn.tailwindcss.com"
)

// toastScript removes toasts once their data-duration has elapsed.
const toastScript = `<script>
htmx.onLoad(function (root) {
  var toasts = root.matches && root.matches("[data-toast]") ? [root] : root.querySelectorAll("[data-toast]");
  toasts.forEach(function (t) {
    var ms = parseInt(t.dataset.duration, 10);
    if (ms > 0) { setTimeout(function () { t.remove(); }, ms); }
  });
});
</script>`

type field struct {
	name, label, kind string
}

type generator struct {
	kind, title string
	fields      []field
}

var generators = []generator{
	{kind: "text", title: "Text QR Code", fields: []field{{"text", "Enter your text", "textarea"}}},
	{kind: "url", title: "URL QR Code", fields: []field{{"url", "Enter URL", "text"}}},
	{kind: "wifi", title: "WiFi QR Code", fields: []field{
		{"ssid", "WiFi Name (SSID)", "text"},
		{"password", "WiFi Password", "password"},
		{"security", "WiFi Type", "security"},
		{"hidden", "Hidden Network", "checkbox"},
	}},
	{kind: "contact", title: "Contact QR Code (vCard)", fields: []field{
		{"name", "Full Name", "text"},
		{"phone", "Phone Number", "text"},
		{"email", "Email", "email"},
		{"company", "Company", "text"},
		{"title", "Title", "text"},
		{"website", "Website", "text"},
	}},
}

func writeField(b *strings.Builder, f field) {
	switch f.kind {
	case "textarea":
		fmt.Fprintf(b, `<label>%s <textarea name="%s" rows="4"></textarea></label>`, f.label, f.name)
	case "security":
		fmt.Fprintf(b, `<label>%s <select name="%s"><option>WPA</option><option>WEP</option><option>nopass</option></select></label>`, f.label, f.name)
	case "checkbox":
		fmt.Fprintf(b, `<label><input type="checkbox" name="%s" value="true"> %s</label>`, f.name, f.label)
	default:
		fmt.Fprintf(b, `<label>%s <input type="%s" name="%s"></label>`, f.label, f.kind, f.name)
	}
}

// HomePage renders one form per content type plus the batch and scan forms.
func HomePage(style components.StyleFields) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>QR Code Generator</title>`)
		fmt.Fprintf(&b, `<script src="%s"></script><script src="%s"></script>`, tailwindCDN, htmxCDN)
		b.WriteString(`</head><body class="mx-auto max-w-3xl p-6">`)
		fmt.Fprintf(&b, `<div id="%s" class="fixed bottom-4 right-4 z-50 grid w-80 gap-2" aria-live="polite"></div>`, components.ToastRegion)
		b.WriteString(`<h1>Advanced QR Code Generator</h1><p>Generate and scan QR codes.</p>`)

		var panel strings.Builder
		if err := components.StylePanel(style).Render(ctx, &panel); err != nil {
			return err
		}

		for _, g := range generators {
			fmt.Fprintf(&b, `<section id="%s"><h2>%s</h2>`, g.kind, g.title)
			fmt.Fprintf(&b, `<form method="post" action="/api/qr/%[1]s" enctype="multipart/form-data" hx-post="/api/htmx/qr/%[1]s" hx-encoding="multipart/form-data" hx-target="#result-%[1]s" class="grid gap-2">`, g.kind)
			for _, f := range g.fields {
				writeField(&b, f)
			}
			b.WriteString(panel.String())
			fmt.Fprintf(&b, `<button type="submit">Generate %s</button>`, g.title)
			fmt.Fprintf(&b, `<button type="submit" formaction="/api/qr/%[1]s/animated" hx-post="/api/htmx/qr/%[1]s/animated">Animated preview</button>`, g.kind)
			fmt.Fprintf(&b, `</form><div id="result-%s" class="mt-4"></div></section>`, g.kind)
		}

		b.WriteString(`<section id="batch"><h2>Batch QR Code Generation</h2>`)
		b.WriteString(`<p>Upload a CSV file with data to generate multiple QR codes</p>`)
		b.WriteString(`<form method="post" action="/api/batch" enctype="multipart/form-data" hx-post="/api/htmx/batch" hx-encoding="multipart/form-data" hx-target="#result-batch" class="grid gap-2">`)
		b.WriteString(`<label>Upload CSV File <input type="file" name="file" accept=".csv,text/csv"></label>`)
		b.WriteString(panel.String())
		b.WriteString(`<button type="submit">Generate Batch QR Codes</button></form><div id="result-batch" class="mt-4"></div></section>`)

		b.WriteString(`<section id="scan"><h2>QR Code Scanner</h2>`)
		b.WriteString(`<form method="post" action="/api/scan" enctype="multipart/form-data" hx-post="/api/htmx/scan" hx-encoding="multipart/form-data" hx-target="#result-scan" class="grid gap-2">`)
		b.WriteString(`<label>Upload an image with QR code <input type="file" name="image" accept="image/png,image/jpeg"></label>`)
		b.WriteString(`<button type="submit">Scan</button></form><div id="result-scan" class="mt-4"></div></section>`)

		b.WriteString(toastScript)
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

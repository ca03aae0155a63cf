package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrstudio/internal/batch"
	"github.com/cristianadrielbraun/qrstudio/internal/composer"
	"github.com/cristianadrielbraun/qrstudio/internal/config"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/scanner"
	"github.com/cristianadrielbraun/qrstudio/internal/termqr"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// styleFlags are the generation options shared by every generating command.
// Zero values fall back to the configured defaults.
type styleFlags struct {
	size     int
	ec       string
	fg       string
	bg       string
	style    string
	logo     string
	animate  bool
	frames   int
	speed    int
	out      string
	terminal bool
}

// register adds the style flags to cmd. single adds the flags that only make
// sense for one code at a time.
func (f *styleFlags) register(cmd *cobra.Command, single bool) {
	fl := cmd.Flags()
	fl.IntVar(&f.size, "size", 0, fmt.Sprintf("Image size %d..%d (default from config)", config.MinSize, config.MaxSize))
	fl.StringVar(&f.ec, "ec", "", "Error correction level L, M, Q or H")
	fl.StringVar(&f.fg, "fg", "", "Foreground color as #RRGGBB")
	fl.StringVar(&f.bg, "bg", "", "Background color as #RRGGBB or transparent")
	fl.StringVar(&f.style, "style", "", "Classic, Rounded, Dots or Artistic")
	fl.StringVar(&f.logo, "logo", "", "Logo image (PNG, JPEG or SVG) placed in the center")
	fl.StringVarP(&f.out, "out", "o", ".", "Output directory")
	if !single {
		return
	}
	fl.BoolVar(&f.animate, "animate", false, "Write a rotating animated PNG instead of a still image")
	fl.IntVar(&f.frames, "frames", 0, "Animation frame count (default from config)")
	fl.IntVar(&f.speed, "speed", 0, "Animation speed 1..5 (default from config)")
	fl.BoolVar(&f.terminal, "terminal", false, "Print the code to the terminal instead of writing a file")
}

// resolve merges the flags over the configured defaults.
func (f *styleFlags) resolve(configPath string) (composer.StyleConfig, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return composer.StyleConfig{}, nil, fmt.Errorf("load config: %w", err)
	}
	sc, err := cfg.Style.StyleConfig()
	if err != nil {
		return sc, nil, err
	}

	if f.size != 0 {
		if f.size < config.MinSize || f.size > config.MaxSize {
			return sc, nil, fmt.Errorf("%w: %d must be between %d and %d", composer.ErrInvalidSize, f.size, config.MinSize, config.MaxSize)
		}
		sc.Size = f.size
	}
	if f.ec != "" {
		if sc.ErrorCorrection, err = composer.ParseECLevel(f.ec); err != nil {
			return sc, nil, err
		}
	}
	if sc.Foreground, err = composer.ParseHexColor(f.fg, sc.Foreground); err != nil {
		return sc, nil, err
	}
	if sc.Background, err = composer.ParseHexColor(f.bg, sc.Background); err != nil {
		return sc, nil, err
	}
	if f.style != "" {
		if sc.Style, err = composer.ParseStyle(f.style); err != nil {
			return sc, nil, err
		}
	}
	if f.logo != "" {
		if sc.Logo, err = os.ReadFile(f.logo); err != nil {
			return sc, nil, fmt.Errorf("read logo: %w", err)
		}
	}
	if f.frames == 0 {
		f.frames = cfg.Style.Frames
	}
	if f.speed == 0 {
		f.speed = cfg.Style.Speed
	}
	return sc, cfg, nil
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, warningStyle.Render("warning: "+w))
	}
}

func writeOutput(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// generate builds one code for kind and writes it to the terminal or a file.
func generate(configPath string, kind payload.Kind, f *styleFlags, build func() (string, error)) error {
	data, err := build()
	if err != nil {
		if w := payload.Warning(err); w != "" {
			fmt.Fprintln(os.Stderr, warningStyle.Render(w))
		}
		return err
	}
	style, _, err := f.resolve(configPath)
	if err != nil {
		return err
	}

	if f.terminal {
		out, err := termqr.Render(data, style.ErrorCorrection, false)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	var png []byte
	if f.animate {
		frames, warnings, err := composer.GenerateAnimated(data, style, f.frames)
		if err != nil {
			return err
		}
		printWarnings(warnings)
		if png, err = composer.EncodeAPNG(frames, f.speed); err != nil {
			return err
		}
	} else {
		res, err := composer.Create(data, style)
		if err != nil {
			return err
		}
		printWarnings(res.Warnings)
		if png, err = composer.EncodePNG(res.Image); err != nil {
			return err
		}
	}

	path, err := writeOutput(f.out, payload.DownloadName(kind, time.Now()), png)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("QR code generated: ") + path)
	return nil
}

func generateCommands(configPath *string) []*cobra.Command {
	var textFlags styleFlags
	textCmd := &cobra.Command{
		Use:   "text [content]",
		Short: "Generate a QR code for plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(*configPath, payload.KindText, &textFlags, func() (string, error) {
				return payload.Text(strings.Join(args, " "))
			})
		},
	}
	textFlags.register(textCmd, true)

	var urlFlags styleFlags
	urlCmd := &cobra.Command{
		Use:   "url [address]",
		Short: "Generate a QR code for a URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(*configPath, payload.KindURL, &urlFlags, func() (string, error) {
				var addr string
				if len(args) > 0 {
					addr = args[0]
				}
				return payload.URL(addr)
			})
		},
	}
	urlFlags.register(urlCmd, true)

	var (
		wifiFlags styleFlags
		wifi      payload.WiFi
		security  string
	)
	wifiCmd := &cobra.Command{
		Use:   "wifi",
		Short: "Generate a QR code that joins a WiFi network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(*configPath, payload.KindWiFi, &wifiFlags, func() (string, error) {
				sec, err := payload.ParseSecurity(security)
				if err != nil {
					return "", err
				}
				wifi.Security = sec
				return wifi.Payload()
			})
		},
	}
	wifiCmd.Flags().StringVar(&wifi.SSID, "ssid", "", "Network name")
	wifiCmd.Flags().StringVar(&wifi.Password, "password", "", "Network password")
	wifiCmd.Flags().StringVar(&security, "security", "WPA", "WPA, WEP or nopass")
	wifiCmd.Flags().BoolVar(&wifi.Hidden, "hidden", false, "Network is hidden")
	wifiFlags.register(wifiCmd, true)

	var (
		contactFlags styleFlags
		contact      payload.Contact
	)
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Generate a vCard QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(*configPath, payload.KindContact, &contactFlags, contact.Payload)
		},
	}
	contactCmd.Flags().StringVar(&contact.Name, "name", "", "Full name")
	contactCmd.Flags().StringVar(&contact.Phone, "phone", "", "Phone number")
	contactCmd.Flags().StringVar(&contact.Email, "email", "", "Email address")
	contactCmd.Flags().StringVar(&contact.Company, "company", "", "Company")
	contactCmd.Flags().StringVar(&contact.Title, "title", "", "Job title")
	contactCmd.Flags().StringVar(&contact.Website, "website", "", "Website")
	contactFlags.register(contactCmd, true)

	return []*cobra.Command{textCmd, urlCmd, wifiCmd, contactCmd}
}

func batchCommand(configPath *string) *cobra.Command {
	var (
		flags   styleFlags
		preview int
	)
	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Generate one QR code per CSV row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer f.Close()

			records, err := batch.Read(f)
			if err != nil {
				return err
			}
			style, _, err := flags.resolve(*configPath)
			if err != nil {
				return err
			}

			for _, rec := range batch.Preview(records, preview) {
				p, err := rec.Payload()
				if err != nil {
					return err
				}
				fmt.Println(mutedStyle.Render(p))
			}

			now := time.Now()
			for i, rec := range records {
				p, err := rec.Payload()
				if err != nil {
					return err
				}
				res, err := composer.Create(p, style)
				if err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
				printWarnings(res.Warnings)
				png, err := composer.EncodePNG(res.Image)
				if err != nil {
					return err
				}
				if _, err := writeOutput(flags.out, payload.BatchDownloadName(i+1, now), png); err != nil {
					return err
				}
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Generated %d QR codes in ", len(records))) + flags.out)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().IntVar(&preview, "preview", 5, "Number of row payloads to print before generating")
	return cmd
}

func scanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "Decode the QR code in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := scanner.DecodeFile(args[0])
			if errors.Is(err, scanner.ErrNotFound) {
				fmt.Fprintln(os.Stderr, warningStyle.Render("No QR code detected in the image"))
			}
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

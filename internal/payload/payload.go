// Package payload turns form input into the text that gets encoded into a QR
// symbol. Each content type has a fixed text format; builders only check that
// required fields are present.
package payload

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is returned when a required input field is empty.
	ErrMissingField = errors.New("required field is empty")
	// ErrInvalidSecurity is returned for an unsupported WiFi security type.
	ErrInvalidSecurity = errors.New("unsupported wifi security type")
)

// MissingFieldError names the empty field and carries the warning shown to the user.
type MissingFieldError struct {
	Field   string
	Warning string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrMissingField.Error())
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func missing(field, warning string) error {
	return &MissingFieldError{Field: field, Warning: warning}
}

// Warning returns the user-facing warning for an input-missing error, or "".
func Warning(err error) string {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Warning
	}
	return ""
}

// Text returns s unchanged when it holds anything besides whitespace.
func Text(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", missing("text", "Please enter some text!")
	}
	return s, nil
}

// URL prefixes https:// unless the value already carries an http or https scheme.
func URL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", missing("url", "Please enter a URL!")
	}
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		v = "https://" + v
	}
	return v, nil
}

// Security is a WiFi authentication type as understood by phone camera apps.
type Security string

const (
	SecurityWPA    Security = "WPA"
	SecurityWEP    Security = "WEP"
	SecurityNoPass Security = "nopass"
)

// ParseSecurity maps a form value onto a Security. Empty means WPA.
func ParseSecurity(s string) (Security, error) {
	switch strings.TrimSpace(s) {
	case "", "WPA", "wpa":
		return SecurityWPA, nil
	case "WEP", "wep":
		return SecurityWEP, nil
	case "nopass", "NOPASS", "none":
		return SecurityNoPass, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSecurity, s)
	}
}

// WiFi holds network credentials.
type WiFi struct {
	SSID     string
	Password string
	Security Security
	Hidden   bool
}

// Payload renders the WIFI: config line.
func (w WiFi) Payload() (string, error) {
	if strings.TrimSpace(w.SSID) == "" {
		return "", missing("ssid", "Please enter a WiFi name!")
	}
	sec := w.Security
	if sec == "" {
		sec = SecurityWPA
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;", sec, w.SSID, w.Password, w.Hidden), nil
}

// Contact holds the fields of a vCard 3.0 block. Values are not escaped.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Title   string
	Website string
}

// Payload renders the vCard block with fields in a fixed order.
func (c Contact) Payload() (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", missing("name", "Please enter at least a name!")
	}
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + c.Name,
		"TEL:" + c.Phone,
		"EMAIL:" + c.Email,
		"ORG:" + c.Company,
		"TITLE:" + c.Title,
		"URL:" + c.Website,
		"END:VCARD",
	}
	return strings.Join(lines, "\n"), nil
}

package payload_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
)

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("returns input unchanged", func(t *testing.T) {
		t.Parallel()
		got, err := payload.Text("  hello world ")
		require.NoError(t, err)
		assert.Equal(t, "  hello world ", got)
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		t.Parallel()
		got, err := payload.Text(" \t\n")
		require.Error(t, err)
		assert.Empty(t, got)
		assert.True(t, errors.Is(err, payload.ErrMissingField))
		assert.Equal(t, "Please enter some text!", payload.Warning(err))
	})
}

func TestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "adds https scheme", in: "example.com", want: "https://example.com"},
		{name: "keeps http", in: "http://example.com", want: "http://example.com"},
		{name: "keeps https", in: "https://example.com/a?b=c", want: "https://example.com/a?b=c"},
		{name: "trims whitespace", in: "  example.com/x ", want: "https://example.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := payload.URL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty is missing", func(t *testing.T) {
		t.Parallel()
		_, err := payload.URL("")
		require.ErrorIs(t, err, payload.ErrMissingField)
		assert.Equal(t, "Please enter a URL!", payload.Warning(err))
	})
}

func TestWiFi(t *testing.T) {
	t.Parallel()

	t.Run("exact wire format", func(t *testing.T) {
		t.Parallel()
		got, err := payload.WiFi{SSID: "Home", Password: "secret", Security: payload.SecurityWPA}.Payload()
		require.NoError(t, err)
		assert.Equal(t, "WIFI:T:WPA;S:Home;P:secret;H:false;", got)
	})

	t.Run("hidden network uses lowercase true", func(t *testing.T) {
		t.Parallel()
		got, err := payload.WiFi{SSID: "Cafe", Security: payload.SecurityNoPass, Hidden: true}.Payload()
		require.NoError(t, err)
		assert.Equal(t, "WIFI:T:nopass;S:Cafe;P:;H:true;", got)
	})

	t.Run("empty security defaults to WPA", func(t *testing.T) {
		t.Parallel()
		got, err := payload.WiFi{SSID: "Lab", Password: "pw"}.Payload()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "WIFI:T:WPA;"))
	})

	t.Run("empty ssid produces warning", func(t *testing.T) {
		t.Parallel()
		got, err := payload.WiFi{Password: "secret"}.Payload()
		require.ErrorIs(t, err, payload.ErrMissingField)
		assert.Empty(t, got)
		assert.Equal(t, "Please enter a WiFi name!", payload.Warning(err))
	})
}

func TestParseSecurity(t *testing.T) {
	t.Parallel()

	sec, err := payload.ParseSecurity("WEP")
	require.NoError(t, err)
	assert.Equal(t, payload.SecurityWEP, sec)

	sec, err = payload.ParseSecurity("")
	require.NoError(t, err)
	assert.Equal(t, payload.SecurityWPA, sec)

	_, err = payload.ParseSecurity("WPA3-Enterprise")
	assert.ErrorIs(t, err, payload.ErrInvalidSecurity)
}

func TestContact(t *testing.T) {
	t.Parallel()

	t.Run("fields in fixed order", func(t *testing.T) {
		t.Parallel()
		got, err := payload.Contact{
			Name:    "Jane Doe",
			Phone:   "555-1234",
			Email:   "jane@x.com",
			Company: "Acme",
			Title:   "Eng",
			Website: "acme.com",
		}.Payload()
		require.NoError(t, err)

		want := "BEGIN:VCARD\nVERSION:3.0\nN:Jane Doe\nTEL:555-1234\nEMAIL:jane@x.com\nORG:Acme\nTITLE:Eng\nURL:acme.com\nEND:VCARD"
		assert.Equal(t, want, got)

		lines := strings.Split(got, "\n")
		assert.Equal(t, "BEGIN:VCARD", lines[0])
		assert.Equal(t, "VERSION:3.0", lines[1])
		assert.Equal(t, "END:VCARD", lines[len(lines)-1])
	})

	t.Run("special characters are not escaped", func(t *testing.T) {
		t.Parallel()
		got, err := payload.Contact{Name: "Doe;Jane,Jr"}.Payload()
		require.NoError(t, err)
		assert.Contains(t, got, "N:Doe;Jane,Jr\n")
	})

	t.Run("name is required", func(t *testing.T) {
		t.Parallel()
		_, err := payload.Contact{Phone: "555"}.Payload()
		require.ErrorIs(t, err, payload.ErrMissingField)
		assert.Equal(t, "Please enter at least a name!", payload.Warning(err))
	})
}

func TestDownloadName(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "wifi_qr_20240309_070501.png", payload.DownloadName(payload.KindWiFi, ts))
	assert.Equal(t, "batch_qr_3_20240309_070501.png", payload.BatchDownloadName(3, ts))

	k, ok := payload.ParseKind("contact")
	assert.True(t, ok)
	assert.Equal(t, payload.KindContact, k)

	_, ok = payload.ParseKind("batch")
	assert.False(t, ok, "batch is not a single-payload kind")
}

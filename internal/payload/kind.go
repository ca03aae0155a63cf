package payload

import (
	"fmt"
	"time"
)

// Kind identifies the content type a QR code was generated from.
type Kind string

const (
	KindText    Kind = "text"
	KindURL     Kind = "url"
	KindWiFi    Kind = "wifi"
	KindContact Kind = "contact"
	KindBatch   Kind = "batch"
)

// ParseKind accepts the four single-payload kinds.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindText, KindURL, KindWiFi, KindContact:
		return k, true
	}
	return "", false
}

const timestampLayout = "20060102_150405"

// DownloadName returns <kind>_qr_<timestamp>.png.
func DownloadName(k Kind, t time.Time) string {
	return fmt.Sprintf("%s_qr_%s.png", k, t.Format(timestampLayout))
}

// BatchDownloadName returns batch_qr_<n>_<timestamp>.png for the 1-based row n.
func BatchDownloadName(n int, t time.Time) string {
	return fmt.Sprintf("%s_qr_%d_%s.png", KindBatch, n, t.Format(timestampLayout))
}

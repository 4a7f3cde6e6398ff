package report

import (
	"fmt"
	"strings"

	"e2eperf/internal/domain"
)

// Status classes used by the report's CSS
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// StatusClass buckets an HTTP status: 2xx success, 4xx and above error,
// everything else (including 3xx and the 0 sentinel) warning.
func StatusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 400:
		return StatusError
	default:
		return StatusWarning
	}
}

// FormatSize renders a size in KB. Absent sizes render N/A so they are
// distinguishable from empty bodies.
func FormatSize(kb *float64) string {
	if kb == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f KB", *kb)
}

// FormatDuration renders milliseconds with two decimals, or N/A when unknown
func FormatDuration(ms domain.Millis) string {
	if ms.Unknown() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f ms", float64(ms))
}

// textEscaper escapes markup in text nodes. Quotes are left alone so console
// lines keep their JSON form byte for byte.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

package metadata

import (
	"strings"
	"time"
)

// pdfDateLayout parses the 14-digit body of a PDF date (D:YYYYMMDDHHMMSS).
const pdfDateLayout = "20060102150405"

// FormatPDFDate normalizes a PDF date string into a human-readable form.
// Missing or unprefixed values yield "Not Available"; anything that carries
// the D: prefix but fails to parse is reported verbatim with an
// "Invalid Format" prefix rather than failing.
func FormatPDFDate(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "D:") {
		return notAvailable
	}
	clean := raw[2:]
	// drop the timezone offset (+HH'MM' / -HH'MM') and any literal Z
	if i := strings.IndexAny(clean, "+-"); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.TrimSuffix(clean, "Z")

	t, err := time.Parse(pdfDateLayout, clean)
	if err != nil {
		return "Invalid Format: " + raw
	}
	return t.Format("January 02, 2006, 03:04:05 PM")
}

package constants

import "strings"

// Document formats recognized by the intake pipeline.
const (
	PDF   = "PDF"
	DOCX  = "DOCX"
	DOC   = "DOC"
	IMAGE = "IMAGE"
	TXT   = "TXT"
)

// AllowedExtensions holds the file extensions accepted for intake.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
// Every extension comparison in the codebase goes through this.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a document format tag.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "doc":
		return DOC
	case "png", "jpg", "jpeg":
		return IMAGE
	case "txt":
		return TXT
	default:
		return ""
	}
}

// IsAllowed reports whether the extension belongs to the intake set.
func IsAllowed(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

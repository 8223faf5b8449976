package constants

import "strings"

// DocumentMIMEType is the single paginated document format the transcript
// tool accepts alongside plain text.
const DocumentMIMEType = "application/pdf"

// AllowedMIMEType reports whether a declared MIME type is accepted for
// transcript upload: any text/* type, or PDF.
func AllowedMIMEType(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return strings.HasPrefix(mt, "text/") || mt == DocumentMIMEType
}

// Package encode turns uploaded transcript files into self-describing
// data URIs (data:<mime>;base64,<payload>) for the extraction backend.
package encode

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/studenthub-io/studenthub/constants"
	"github.com/studenthub-io/studenthub/internal/common"
)

// EncodeBytes builds a data URI from a declared MIME type and raw bytes.
// The MIME gate runs before any encoding work: types outside text/* and
// PDF are rejected with ErrUnsupportedFileType.
func EncodeBytes(mimeType string, data []byte) (string, error) {
	mt := normalizeMIME(mimeType)
	if mt == "" {
		return "", common.WrapError(common.ErrInvalidInput, "missing MIME type")
	}
	if !constants.AllowedMIMEType(mt) {
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFileType, mt)
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeFile reads path into memory and encodes it. The MIME type comes
// from the file extension; unreadable files yield ErrEncoding and never a
// partial URI.
func EncodeFile(path string) (string, error) {
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		return "", fmt.Errorf("%w: unknown extension %q", common.ErrUnsupportedFileType, filepath.Ext(path))
	}
	if !constants.AllowedMIMEType(mt) {
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFileType, mt)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", common.ErrEncoding, path, err)
	}
	return EncodeBytes(mt, data)
}

// ParseDataURI splits a data URI into its MIME type and decoded payload.
// Used to re-validate extraction input and to inline text documents into
// the prompt.
func ParseDataURI(uri string) (mimeType string, payload []byte, err error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return "", nil, common.WrapError(common.ErrInvalidInput, "not a data URI")
	}
	rest := uri[len(prefix):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, common.WrapError(common.ErrInvalidInput, "data URI is not base64-encoded")
	}
	mt := normalizeMIME(rest[:sep])
	if mt == "" {
		return "", nil, common.WrapError(common.ErrInvalidInput, "data URI missing MIME type")
	}
	payload, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("%w: decode payload: %v", common.ErrInvalidInput, err)
	}
	return mt, payload, nil
}

func normalizeMIME(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

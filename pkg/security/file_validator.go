package security

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxCVSize is the largest CV the client accepts (10 MB).
const MaxCVSize int64 = 10 << 20

var (
	ErrInvalidFileType = errors.New("Invalid file type. Please upload a PDF, image (JPEG/PNG), or Word document.")
	ErrFileTooLarge    = errors.New("File size must be less than 10MB.")
)

// Strict CV MIME whitelist - application/octet-stream is never accepted
var allowedCVTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateCV checks the declared MIME type against the whitelist and the size limit.
func ValidateCV(mimeType string, size int64) error {
	if !allowedCVTypes[normalizeMIME(mimeType)] {
		return ErrInvalidFileType
	}
	if size > MaxCVSize {
		return ErrFileTooLarge
	}
	return nil
}

// IsAllowedCVType reports whether the MIME type is on the CV whitelist
func IsAllowedCVType(mimeType string) bool {
	return allowedCVTypes[normalizeMIME(mimeType)]
}

// AllowedCVTypes returns the whitelist for error messages and page hints
func AllowedCVTypes() []string {
	types := make([]string, 0, len(allowedCVTypes))
	for t := range allowedCVTypes {
		types = append(types, t)
	}
	return types
}

// DetectMIME resolves the MIME type of an upload: the declared type wins,
// then content sniffing, then the file extension.
func DetectMIME(filename string, head []byte, declared string) string {
	if t := normalizeMIME(declared); t != "" && t != octetStream {
		return t
	}
	if len(head) > 0 {
		if t := normalizeMIME(mimetype.Detect(head).String()); t != octetStream {
			return t
		}
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return normalizeMIME(t)
	}
	return octetStream
}

// DetectFileMIME sniffs a file on disk, falling back to its extension.
func DetectFileMIME(path string) (string, error) {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return normalizeMIME(t), nil
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	return normalizeMIME(mt.String()), nil
}

const octetStream = "application/octet-stream"

// normalizeMIME strips parameters such as "; charset=utf-8"
func normalizeMIME(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

// Package extract validates uploaded files and pulls plain text out of them.
package extract

import (
	"fmt"
	"mime"
	"strings"

	"clearclause/internal/util"

	"github.com/gabriel-vasile/mimetype"
)

const (
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeDOC  = "application/msword"
	TypeText = "text/plain"
)

var allowedTypes = []string{TypePDF, TypeDOCX, TypeDOC, TypeText}

// UploadError is an upload failure whose message is safe to show the user.
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string { return e.Message }
func (e *UploadError) Unwrap() error { return e.Err }

func Allowed(mediaType string) bool {
	for _, t := range allowedTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

// ValidateUpload checks size before type; both run before any extraction.
func ValidateUpload(size int64, mediaType string, maxBytes int64) error {
	if size > maxBytes {
		return &UploadError{
			Message: fmt.Sprintf("File size exceeds limit. Maximum size is %dMB", maxBytes/1024/1024),
			Err:     util.ErrFileTooLarge,
		}
	}
	if !Allowed(mediaType) {
		return &UploadError{
			Message: "Unsupported file type. Please upload PDF, DOCX, DOC, or TXT files.",
			Err:     util.ErrUnsupportedType,
		}
	}
	return nil
}

// ResolveMediaType normalises the type the client declared. When it is
// missing or generic the content is sniffed instead.
func ResolveMediaType(declared string, data []byte) string {
	declared = baseType(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	detected := mimetype.Detect(data)
	for _, t := range allowedTypes {
		if detected.Is(t) {
			return t
		}
	}
	return baseType(detected.String())
}

func baseType(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(v)
	}
	return mt
}

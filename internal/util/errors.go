package util

import "errors"

var (
	ErrNoExtractableText = errors.New("no text content found in the document")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file size exceeds limit")
)

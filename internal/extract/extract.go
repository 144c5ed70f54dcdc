package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"clearclause/internal/models"
	"clearclause/internal/util"

	"github.com/ledongthuc/pdf"
)

const (
	SuccessMessage = "Document uploaded and processed successfully"
	PreviewChars   = 200
)

var errEmptyPDF = errors.New("PDF appears to be empty or contains only images/scanned content")

// Text extracts plain text from data according to mediaType. Failures come
// back as *UploadError; text that is blank after extraction yields
// util.ErrNoExtractableText.
func Text(data []byte, mediaType string) (string, error) {
	var (
		text string
		err  error
	)
	switch mediaType {
	case TypePDF:
		text, err = pdfText(data)
		if err != nil {
			return "", &UploadError{Message: "PDF processing failed: " + err.Error(), Err: err}
		}
	case TypeDOCX:
		text, err = docxText(data)
		if err != nil {
			return "", &UploadError{Message: "DOCX processing failed: " + err.Error(), Err: err}
		}
	case TypeText:
		text = plainText(data)
	default:
		return "", &UploadError{
			Message: "Failed to extract text from the document: Unsupported file type: " + mediaType,
			Err:     util.ErrUnsupportedType,
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", &UploadError{Message: "No text content found in the document", Err: util.ErrNoExtractableText}
	}
	return text, nil
}

func pdfText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text = util.SanitizeText(buf.String())
	if text == "" {
		return "", errEmptyPDF
	}
	return text, nil
}

// docxText reads word/document.xml and keeps run text, turning paragraphs,
// breaks and tabs into whitespace.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("word/document.xml not found in archive")
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("open document part: %w", err)
	}
	defer rc.Close()

	var (
		out    strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document part: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// Describe builds the upload response for an extracted document.
func Describe(fileName string, size int64, mediaType, text string) models.UploadResponse {
	return models.UploadResponse{
		Message:     SuccessMessage,
		FileName:    fileName,
		Size:        size,
		Type:        mediaType,
		WordCount:   util.WordCount(text),
		CharCount:   util.CharCount(text),
		TextPreview: util.Preview(text, PreviewChars),
		Text:        text,
	}
}

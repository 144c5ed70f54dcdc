package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DocumentContext is the uploaded document text the browser sends back with a
// request. The server never keeps it between requests.
type DocumentContext struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

type QARequest struct {
	Question         InputString `json:"question"`
	DocumentContent  string      `json:"documentContent,omitempty"`
	DocumentFileName string      `json:"documentFileName,omitempty"`
}

type QAResponse struct {
	Answer string `json:"answer"`
}

type SummarizeRequest struct {
	Instruction      InputString `json:"instruction"`
	DocumentContent  string      `json:"documentContent,omitempty"`
	DocumentFileName string      `json:"documentFileName,omitempty"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type TranslateRequest struct {
	Text           InputString `json:"text"`
	TargetLanguage InputString `json:"targetLanguage"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// UploadResponse carries everything the browser keeps as its uploaded
// document record, including the full extracted text it re-sends with later
// questions.
type UploadResponse struct {
	Message     string `json:"message"`
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	WordCount   int    `json:"wordCount"`
	CharCount   int    `json:"charCount"`
	TextPreview string `json:"textPreview"`
	Text        string `json:"extractedText,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Document builds the optional context for requests that carry document text.
func Document(fileName, content string) *DocumentContext {
	if content == "" {
		return nil
	}
	return &DocumentContext{FileName: fileName, Content: content}
}

// InputString accepts any JSON value so handlers can tell a missing field
// from one of the wrong type instead of failing the whole body.
type InputString struct {
	Value    string
	IsString bool
	// Set is false for absent, null, false, 0 and "".
	Set bool
}

func Str(v string) InputString {
	return InputString{Value: v, IsString: true, Set: v != ""}
}

func (s *InputString) UnmarshalJSON(data []byte) error {
	*s = InputString{}
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		return nil
	case data[0] == '"':
		if err := json.Unmarshal(data, &s.Value); err != nil {
			return err
		}
		s.IsString = true
		s.Set = s.Value != ""
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		s.Set = err != nil || f != 0
	default:
		s.Set = true
	}
	return nil
}

func (s InputString) MarshalJSON() ([]byte, error) {
	if !s.IsString {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Package prompts turns user input into the prompt text sent to the model.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"clearclause/internal/models"
	"clearclause/internal/util"

	"gopkg.in/yaml.v3"
)

const DefaultDocumentCharLimit = 8000

//go:embed templates.yaml
var embeddedTemplates []byte

type Templates struct {
	QA                string `yaml:"qa"`
	QADocument        string `yaml:"qa_document"`
	Summarize         string `yaml:"summarize"`
	SummarizeDocument string `yaml:"summarize_document"`
	Translate         string `yaml:"translate"`
	Disclaimer        string `yaml:"disclaimer"`
	TruncationMarker  string `yaml:"truncation_marker"`
}

func DefaultTemplates() Templates {
	var t Templates
	if err := yaml.Unmarshal(embeddedTemplates, &t); err != nil {
		panic(fmt.Sprintf("embedded prompt templates: %v", err))
	}
	return t
}

// LoadTemplates reads an override file on top of the embedded defaults.
// Keys missing from the file keep their default text. An empty path returns
// the defaults.
func LoadTemplates(path string) (Templates, error) {
	t := DefaultTemplates()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("read prompt templates: %w", err)
	}
	var override Templates
	if err := yaml.Unmarshal(b, &override); err != nil {
		return Templates{}, fmt.Errorf("parse prompt templates %s: %w", path, err)
	}
	merge(&t.QA, override.QA)
	merge(&t.QADocument, override.QADocument)
	merge(&t.Summarize, override.Summarize)
	merge(&t.SummarizeDocument, override.SummarizeDocument)
	merge(&t.Translate, override.Translate)
	merge(&t.Disclaimer, override.Disclaimer)
	merge(&t.TruncationMarker, override.TruncationMarker)
	return t, nil
}

func merge(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// Builder is stateless after construction; the same inputs always produce
// the same prompt.
type Builder struct {
	t        Templates
	docLimit int
}

func NewBuilder(t Templates, docLimit int) *Builder {
	if docLimit <= 0 {
		docLimit = DefaultDocumentCharLimit
	}
	return &Builder{t: t, docLimit: docLimit}
}

func (b *Builder) QA(question string, doc *models.DocumentContext) string {
	if !hasContent(doc) {
		return fill(b.t.QA, "{question}", question)
	}
	return fill(b.t.QADocument,
		"{question}", question,
		"{fileName}", docName(doc),
		"{document}", b.Excerpt(doc.Content),
	)
}

func (b *Builder) Summarize(instruction string, doc *models.DocumentContext) string {
	if !hasContent(doc) {
		return fill(b.t.Summarize, "{instruction}", instruction)
	}
	return fill(b.t.SummarizeDocument,
		"{instruction}", instruction,
		"{fileName}", docName(doc),
		"{document}", b.Excerpt(doc.Content),
	)
}

func (b *Builder) Translate(text, targetLanguage string) string {
	return fill(b.t.Translate, "{text}", text, "{targetLanguage}", targetLanguage)
}

// Excerpt keeps at most the configured number of characters of a document and
// marks the cut when one happened.
func (b *Builder) Excerpt(text string) string {
	kept, cut := util.TruncateRunes(text, b.docLimit)
	if cut {
		return kept + b.t.TruncationMarker
	}
	return kept
}

// WithDisclaimer appends the standard disclaimer unless the answer already
// mentions "legal advice" (case-sensitive).
func (b *Builder) WithDisclaimer(answer string) string {
	if strings.Contains(answer, "legal advice") {
		return answer
	}
	return answer + "\n\n" + b.t.Disclaimer
}

// fill substitutes placeholders in one pass; substituted values are not
// scanned again.
func fill(tmpl string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}

func hasContent(doc *models.DocumentContext) bool {
	return doc != nil && strings.TrimSpace(doc.Content) != ""
}

func docName(doc *models.DocumentContext) string {
	if name := strings.TrimSpace(doc.FileName); name != "" {
		return name
	}
	return "uploaded document"
}
